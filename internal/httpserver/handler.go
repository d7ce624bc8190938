package httpserver

import (
	"context"

	"report-runtime/internal/middleware"
)

func (srv *HTTPServer) mapHandlers(ctx context.Context) error {
	mw := middleware.New(srv.l, srv.discord, srv.config.HTTPServer.ControlKey)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.setupReportDomain(ctx, srv.gin.Group(""), mw); err != nil {
		return err
	}

	if srv.config.HTTPServer.ControlKey == "" {
		srv.l.Warnf(ctx, "httpserver.mapHandlers: control routes are not protected (http_server.control_key is empty)")
	}
	return nil
}

func (srv *HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(middleware.RequestID(), mw.Recovery())
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}
