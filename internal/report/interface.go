package report

import (
	"context"

	"report-runtime/internal/model"
	"report-runtime/internal/widget"
)

// UseCase drives one report page: it decides how the report starts, owns
// the widget controllers and reacts when they all finish.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// Start picks the run mode from configuration and launches it.
	Start(ctx context.Context) error
	// Run submits the criteria form and renders the returned definition.
	Run(ctx context.Context, input RunInput) error
	// RenderWidgets replaces the widget set with one controller per spec and starts them.
	RenderWidgets(ctx context.Context, def model.ReportDefinition) error
	ReloadAll(ctx context.Context) error
	ReloadWidget(ctx context.Context, id model.WidgetID) error
	// ChangeCriteria asks the server to re-render criteria fields for a partial form.
	ChangeCriteria(ctx context.Context, criteria model.Criteria) ([]model.FieldUpdate, error)
	ExportWidget(ctx context.Context, input ExportInput) (string, error)
	// Restore rebuilds a saved report without contacting the job backend.
	// It reports false when nothing is saved under token.
	Restore(ctx context.Context, token string) (bool, error)
	Back(ctx context.Context) (bool, error)
	Forward(ctx context.Context) (bool, error)
	Status() Status
	// Stop disarms the reload timer and cancels every widget.
	Stop()
}

// Presenter is the page around the widgets.
type Presenter interface {
	// Alert shows a blocking message.
	Alert(ctx context.Context, title, body string)
	// Confirm asks the user to acknowledge a prompt.
	Confirm(ctx context.Context, title, body string) bool
	ShowFormErrors(ctx context.Context, body string)
	SetDateTime(ctx context.Context, datetime, timezone string)
	// EnableActions turns on reload and print.
	EnableActions(ctx context.Context)
	DisableActions(ctx context.Context)
	// Navigate sends the page to url, which may download a file.
	Navigate(ctx context.Context, url string)
	// PushHistory records a history entry for a saved report.
	PushHistory(ctx context.Context, url string)
	// WidgetView returns the surface a widget draws on.
	WidgetView(spec model.WidgetSpec) widget.View
}

// Publisher announces lifecycle events to other services.
type Publisher interface {
	PublishWidgetFinished(ctx context.Context, e WidgetFinishedEvent) error
	PublishReportReady(ctx context.Context, e ReportReadyEvent) error
}
