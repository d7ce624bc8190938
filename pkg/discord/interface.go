// Package discord posts report runtime notices to a Discord webhook.
package discord

import (
	"context"
	"net/http"
	"time"

	"report-runtime/pkg/log"
)

// IDiscord is safe for concurrent use.
type IDiscord interface {
	SendError(ctx context.Context, title, description string, err error) error
	SendWarning(ctx context.Context, title, description string) error
	SendInfo(ctx context.Context, title, description string) error
	Close() error
}

// Webhook identifies the channel webhook.
type Webhook struct {
	ID    string
	Token string
}

// Config tunes delivery. Zero Timeout falls back to the default.
type Config struct {
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	Username   string
	// BaseURL overrides the webhook host; empty means Discord.
	BaseURL string
}

// DefaultConfig returns the settings used by New.
func DefaultConfig() Config {
	return Config{
		Timeout:    defaultTimeout,
		RetryCount: defaultRetryCount,
		RetryDelay: defaultRetryDelay,
		Username:   defaultUsername,
	}
}

func New(l log.Logger, webhook Webhook) (IDiscord, error) {
	return NewWithConfig(l, webhook, DefaultConfig())
}

func NewWithConfig(l log.Logger, webhook Webhook, cfg Config) (IDiscord, error) {
	if webhook.ID == "" || webhook.Token == "" {
		return nil, errWebhookRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &discordImpl{
		l:      l,
		url:    baseURL + "/" + webhook.ID + "/" + webhook.Token,
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}
