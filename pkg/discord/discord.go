package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"report-runtime/pkg/log"
)

type discordImpl struct {
	l      log.Logger
	url    string
	config Config
	client *http.Client
}

type level int

const (
	levelInfo level = iota
	levelWarning
	levelError
)

func (lv level) color() int {
	switch lv {
	case levelWarning:
		return colorWarning
	case levelError:
		return colorError
	default:
		return colorInfo
	}
}

type field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
	Fields      []field `json:"fields,omitempty"`
}

type payload struct {
	Username string  `json:"username,omitempty"`
	Embeds   []embed `json:"embeds"`
}

func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	var fields []field
	if err != nil {
		fields = []field{{Name: "Error", Value: truncate(err.Error(), maxFieldValueLength)}}
	}
	return d.notify(ctx, levelError, title, description, fields)
}

func (d *discordImpl) SendWarning(ctx context.Context, title, description string) error {
	return d.notify(ctx, levelWarning, title, description, nil)
}

func (d *discordImpl) SendInfo(ctx context.Context, title, description string) error {
	return d.notify(ctx, levelInfo, title, description, nil)
}

func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func (d *discordImpl) notify(ctx context.Context, lv level, title, description string, fields []field) error {
	if title == "" && description == "" {
		return errEmptyMessage
	}
	body, err := json.Marshal(payload{
		Username: d.config.Username,
		Embeds: []embed{{
			Title:       title,
			Description: truncate(description, maxDescriptionLength),
			Color:       lv.color(),
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Fields:      fields,
		}},
	})
	if err != nil {
		return err
	}
	return d.send(ctx, body)
}

// send retries 5xx and 429 replies up to RetryCount times.
func (d *discordImpl) send(ctx context.Context, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= d.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.config.RetryDelay):
			}
		}
		if lastErr = d.post(ctx, body); lastErr == nil {
			return nil
		}
		var se *statusError
		if errors.As(lastErr, &se) && se.StatusCode < http.StatusInternalServerError && se.StatusCode != http.StatusTooManyRequests {
			break
		}
	}
	if d.l != nil {
		d.l.Warnf(ctx, "pkg.discord.send: webhook delivery failed: %v", lastErr)
	}
	return lastErr
}

func (d *discordImpl) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
