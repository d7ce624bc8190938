package client

import (
	"report-runtime/internal/job"
	pkghttp "report-runtime/pkg/http"
	"report-runtime/pkg/log"
)

// Config configures the job client.
type Config struct {
	// Origin prefixes export URLs, e.g. "https://reports.example.com".
	Origin     string
	HTTPClient pkghttp.IClient
}

type implClient struct {
	l      log.Logger
	origin string
	http   pkghttp.IClient
}

// New creates a job client. Without an HTTP client it builds one that never retries.
func New(l log.Logger, cfg Config) job.Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = pkghttp.NewClient(pkghttp.ClientConfig{Timeout: DefaultTimeout})
	}
	return &implClient{
		l:      l,
		origin: cfg.Origin,
		http:   cfg.HTTPClient,
	}
}
