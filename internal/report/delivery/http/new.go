package http

import (
	"report-runtime/internal/middleware"
	"report-runtime/internal/report"
	"report-runtime/pkg/discord"
	"report-runtime/pkg/log"

	"github.com/gin-gonic/gin"
)

// Handler exposes the report runtime control API.
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l  log.Logger
	uc report.UseCase
	// d receives unexpected errors; may be nil.
	d discord.IDiscord
}

func New(l log.Logger, uc report.UseCase, d discord.IDiscord) Handler {
	return &handler{l: l, uc: uc, d: d}
}
