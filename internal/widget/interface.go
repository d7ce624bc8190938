package widget

import (
	"context"
	"encoding/json"

	"report-runtime/internal/model"
	"report-runtime/internal/widget/render"
)

// Controller owns the lifecycle of one widget.
type Controller interface {
	ID() model.WidgetID
	Slug() string
	Spec() model.WidgetSpec

	// Start runs the widget with criteria, or with its declared criteria when
	// criteria is nil. A data cache on the spec short-circuits all job traffic.
	Start(ctx context.Context, criteria model.Criteria)
	// Reload refreshes criteria from the update URL and resubmits quietly.
	Reload(ctx context.Context) error
	// Cancel drops any outstanding poll. It is safe to call repeatedly.
	Cancel()
	// Resize asks the renderer to redraw.
	Resize()

	State() State
	LastUpdate() (LastUpdate, bool)
	Payload() json.RawMessage
	JobID() string
	Criteria() model.Criteria
	EmbeddableCriteria() model.Criteria
	ErrorPanel() (ErrorPanel, bool)
	Snapshot() model.WidgetSnapshot

	ExportCSV(ctx context.Context, filename string) (string, error)
	ExportJSON(ctx context.Context, filename string) (string, error)
}

// View is the display surface bound to one widget.
type View interface {
	render.Surface
	ShowLoading()
	SetProgress(percent int)
	HideLoading()
	ShowError(panel ErrorPanel)
}

// Alerter shows user-facing dialogs that do not belong to a single widget view.
type Alerter interface {
	Alert(ctx context.Context, title, body string)
}
