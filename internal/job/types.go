package job

import (
	"encoding/json"
	"time"
)

// Handle is the server-assigned URL of one submitted job. It is never reused.
type Handle struct {
	URL string
}

// State is the closed set of job outcomes seen by a poll.
type State int

const (
	StatePending State = iota
	StateComplete
	StateError
)

func (s State) String() string {
	switch s {
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	default:
		return "pending"
	}
}

// Wire status codes of the poll response. Anything else is pending.
const (
	WireStatusComplete = 3
	WireStatusError    = 4
)

// Result is one poll observation.
type Result struct {
	State     State
	Progress  int
	Payload   json.RawMessage
	JobID     string
	Message   string
	Exception string
}

// Err returns the JobError of an error result and nil otherwise.
func (r Result) Err() error {
	if r.State != StateError {
		return nil
	}
	return &JobError{Message: r.Message, Exception: r.Exception}
}

// Format is an export data format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Default cadence of the polling loops.
const (
	DefaultPollInterval       = 1000 * time.Millisecond
	DefaultQuietDelay         = 500 * time.Millisecond
	DefaultExportPollInterval = 200 * time.Millisecond
)

// Cadence groups the intervals used by widget polling.
type Cadence struct {
	PollInterval       time.Duration
	QuietDelay         time.Duration
	ExportPollInterval time.Duration
}

// DefaultCadence returns 1s polling, 500ms quiet completion and 200ms export polling.
func DefaultCadence() Cadence {
	return Cadence{
		PollInterval:       DefaultPollInterval,
		QuietDelay:         DefaultQuietDelay,
		ExportPollInterval: DefaultExportPollInterval,
	}
}
