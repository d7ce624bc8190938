package widget

import (
	"context"
	"encoding/json"
	"sync"

	"report-runtime/internal/export"
	"report-runtime/internal/job"
	"report-runtime/internal/model"
	"report-runtime/internal/widget/render"
	"report-runtime/pkg/clock"
	"report-runtime/pkg/log"
)

// State is the lifecycle state of a widget.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateComplete
	StateError
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Done reports whether the widget has left running.
func (s State) Done() bool {
	return s == StateComplete || s == StateError
}

// LastUpdate is the server time window captured by the latest reload.
type LastUpdate struct {
	Datetime string `json:"datetime"`
	Timezone string `json:"timezone"`
}

// ErrorPanel is what a failed widget shows in place of its content.
type ErrorPanel struct {
	Message string `json:"message"`
	// ServerException marks errors that carry a drill-down trace in Details.
	ServerException bool   `json:"server_exception"`
	Details         string `json:"details,omitempty"`
}

// Options wires a controller to its collaborators.
type Options struct {
	Spec     model.WidgetSpec
	Embedded bool
	// ReportURL tags exports with the report they came from.
	ReportURL string

	Client   job.Client
	View     View
	Renderer render.Renderer
	Alerter  Alerter
	Exports  export.Repository
	Cadence  job.Cadence
	Clock    clock.Clock
	Logger   log.Logger

	// OnFinished is called after every transition to complete or error
	// caused by job traffic. Cached starts do not call it.
	OnFinished func(c Controller)
}

type implController struct {
	l        log.Logger
	client   job.Client
	view     View
	renderer render.Renderer
	alerter  Alerter
	exports  export.Repository
	cadence  job.Cadence
	clock    clock.Clock
	finished func(c Controller)

	spec      model.WidgetSpec
	embedded  bool
	reportURL string

	mu         sync.Mutex
	state      State
	gen        uint64
	cancel     context.CancelFunc
	criteria   model.Criteria
	payload    json.RawMessage
	jobID      string
	panel      *ErrorPanel
	lastUpdate *LastUpdate

	// renderMu keeps renderer and view calls for one widget sequential.
	renderMu sync.Mutex
}
