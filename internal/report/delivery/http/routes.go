package http

import (
	"report-runtime/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1/report")
	api.GET("/status", h.GetStatus)

	ctl := api.Group("")
	ctl.Use(mw.ControlAuth())
	{
		ctl.POST("/run", h.Run)
		ctl.POST("/reload", h.ReloadAll)
		ctl.POST("/criteria", h.ChangeCriteria)
		ctl.POST("/widgets/:widget_id/reload", h.ReloadWidget)
		ctl.POST("/widgets/:widget_id/export", h.ExportWidget)
		ctl.POST("/restore/:token", h.Restore)
		ctl.POST("/history/back", h.Back)
		ctl.POST("/history/forward", h.Forward)
	}
}
