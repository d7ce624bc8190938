package http

import (
	"report-runtime/internal/report/repository"
	pkghttp "report-runtime/pkg/http"
	"report-runtime/pkg/log"
)

// Config holds the report server endpoints.
type Config struct {
	Origin     string
	WidgetsURL string
	FormURL    string
	DebugURL   string
}

type implRepository struct {
	l    log.Logger
	http pkghttp.IClient
	cfg  Config
}

func New(l log.Logger, client pkghttp.IClient, cfg Config) repository.ReportRepository {
	return &implRepository{
		l:    l,
		http: client,
		cfg:  cfg,
	}
}
