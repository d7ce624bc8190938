// Package http is the outbound client for the report and job endpoints.
// GETs are retried on transport failures and 5xx replies; POSTs are sent once.
package http

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout  = 30 * time.Second
	contentTypeForm = "application/x-www-form-urlencoded"
)

// IClient is safe for concurrent use.
type IClient interface {
	Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, int, error)
	PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) ([]byte, int, error)
}

type ClientConfig struct {
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	// Headers are attached to every request (auth and CSRF tokens).
	Headers map[string]string
}

type clientImpl struct {
	client *http.Client
	config ClientConfig
}

func NewClient(cfg ClientConfig) IClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return &clientImpl{
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
	}
}
