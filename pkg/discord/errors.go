package discord

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	errWebhookRequired = errors.New("discord: webhook id and token are required")
	errEmptyMessage    = errors.New("discord: message is empty")
)

// statusError is returned when Discord answers with a non-2xx status.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("discord: unexpected status %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}
