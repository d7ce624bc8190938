package job

import (
	"errors"
	"fmt"
)

// SubmissionError means the job was never created.
type SubmissionError struct {
	URL        string
	StatusCode int
	// Body is the raw response body, if any.
	Body string
	// Message and Exception are taken from a JSON error body.
	Message   string
	Exception string
	Err       error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("submit %s: %v", e.URL, e.Err)
	case e.Message != "":
		return fmt.Sprintf("submit %s: status %d: %s", e.URL, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("submit %s: status %d: %s", e.URL, e.StatusCode, e.Body)
	}
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// PollTransportError means the status request itself failed.
type PollTransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *PollTransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("poll %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("poll %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *PollTransportError) Unwrap() error { return e.Err }

// JobError is a job that finished with status error.
type JobError struct {
	Message   string
	Exception string
}

func (e *JobError) Error() string {
	return e.Message
}

// IsServerException reports whether the server attached an exception trace.
func (e *JobError) IsServerException() bool {
	return e.Exception != ""
}

// MalformedResponseError is a poll or refresh body that cannot be understood.
type MalformedResponseError struct {
	URL  string
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// RefreshError means the update URL could not be read.
type RefreshError struct {
	URL        string
	StatusCode int
	Body       string
	Message    string
	Err        error
}

func (e *RefreshError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("refresh %s: %v", e.URL, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("refresh %s: status %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("refresh %s: status %d", e.URL, e.StatusCode)
}

func (e *RefreshError) Unwrap() error { return e.Err }

var (
	ErrMissingJobURL   = errors.New("response has no joburl")
	ErrMissingStatus   = errors.New("response has no status")
	ErrMissingCriteria = errors.New("response has no widget criteria")
	ErrDownloadFailed  = errors.New("export download failed")
)
