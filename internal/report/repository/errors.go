package repository

import (
	"errors"
	"fmt"
)

var (
	ErrRequestFailed     = errors.New("repository: report request failed")
	ErrMalformedResponse = errors.New("repository: malformed report response")
	ErrFormRejected      = errors.New("repository: criteria form rejected")
)

// FormError is a 400 from the criteria form. Body holds the server's
// validation markup.
type FormError struct {
	Body string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%v: %s", ErrFormRejected, e.Body)
}

func (e *FormError) Unwrap() error {
	return ErrFormRejected
}

// StatusError is any other unexpected status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s returned %d", ErrRequestFailed, e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}
