package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 15 * time.Second

// Run maps the handlers, starts the report and serves the control API until
// a shutdown signal arrives. The report is stopped before the server drains.
func (srv *HTTPServer) Run() error {
	ctx := context.Background()
	if err := srv.mapHandlers(ctx); err != nil {
		srv.l.Errorf(ctx, "httpserver.Run: mapHandlers: %v", err)
		return err
	}

	addr := fmt.Sprintf("%s:%d", srv.host, srv.port)
	server := &http.Server{
		Addr:    addr,
		Handler: srv.gin,
	}

	serveErr := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "Started control API on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	go srv.startReport(ctx)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		srv.reportUC.Stop()
		return err
	case sig := <-ch:
		srv.l.Infof(ctx, "Received signal %v, shutting down gracefully", sig)
	}

	srv.reportUC.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(ctx, "httpserver.Run: server shutdown: %v", err)
		return err
	}
	srv.l.Info(ctx, "Report runtime stopped.")
	return nil
}

func (srv *HTTPServer) startReport(ctx context.Context) {
	if err := srv.reportUC.Start(ctx); err != nil {
		srv.l.Errorf(ctx, "httpserver.startReport: report Start: %v", err)
		return
	}
	srv.l.Infof(ctx, "Report started in %s mode", srv.reportUC.Status().Mode)
}
