package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"report-runtime/pkg/log"
)

func newTestDiscord(t *testing.T, h http.HandlerFunc) IDiscord {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.RetryDelay = time.Millisecond
	d, err := NewWithConfig(log.NewNop(), Webhook{ID: "123", Token: "abc"}, cfg)
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	return d
}

func TestNewRequiresWebhook(t *testing.T) {
	if _, err := New(log.NewNop(), Webhook{}); err != errWebhookRequired {
		t.Errorf("got %v, want %v", err, errWebhookRequired)
	}
}

func TestSendError(t *testing.T) {
	var got payload
	var path string
	d := newTestDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	})

	if err := d.SendError(context.Background(), "Report failed", "widget 3", errEmptyMessage); err != nil {
		t.Fatalf("SendError() error = %v", err)
	}
	if path != "/123/abc" {
		t.Errorf("path = %q, want %q", path, "/123/abc")
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(got.Embeds))
	}
	if got.Embeds[0].Color != colorError {
		t.Errorf("color = %x, want %x", got.Embeds[0].Color, colorError)
	}
	if len(got.Embeds[0].Fields) != 1 || got.Embeds[0].Fields[0].Name != "Error" {
		t.Errorf("fields = %+v", got.Embeds[0].Fields)
	}
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls int32
	d := newTestDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := d.SendInfo(context.Background(), "Report ready", "3 widgets"); err != nil {
		t.Fatalf("SendInfo() error = %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	d := newTestDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	err := d.SendInfo(context.Background(), "Report ready", "3 widgets")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("got %v, want 400 status error", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 5); got != "ab..." {
		t.Errorf("truncate() = %q, want %q", got, "ab...")
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate() = %q, want %q", got, "abc")
	}
}
