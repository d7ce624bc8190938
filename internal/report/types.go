package report

import (
	"time"

	"report-runtime/internal/model"
	"report-runtime/internal/widget"
)

// Phase is the report-wide lifecycle.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseLoading    Phase = "loading"
	PhaseReady      Phase = "ready"
)

// Mode is how the report was launched.
type Mode string

const (
	ModeEmbedded    Mode = "embedded"
	ModeScheduled   Mode = "scheduled"
	ModeStatic      Mode = "static"
	ModePrint       Mode = "print"
	ModeInteractive Mode = "interactive"
)

// Config describes the report page.
type Config struct {
	ReportURL string
	DebugURL  string

	Embedded      bool
	EmbedSlug     string
	EmbedCriteria model.Criteria

	// ReloadInterval above zero turns on scheduled reloads unless Live.
	ReloadInterval time.Duration
	// Offset aligns scheduled reloads to the server schedule.
	Offset time.Duration
	Static bool
	Live   bool

	Print         bool
	PrintCriteria model.Criteria

	AutoRun      bool
	RestoreToken string
}

type RunInput struct {
	Criteria model.Criteria
	// Debug asks the server to collect logs for this run.
	Debug bool
}

type ExportInput struct {
	WidgetID model.WidgetID
	Format   string
	Filename string
}

type WidgetStatus struct {
	ID         model.WidgetID     `json:"id"`
	Slug       string             `json:"slug"`
	State      string             `json:"state"`
	JobID      string             `json:"job_id,omitempty"`
	Error      *widget.ErrorPanel `json:"error,omitempty"`
	LastUpdate *widget.LastUpdate `json:"last_update,omitempty"`
}

// Status is a point-in-time view of the report.
type Status struct {
	Phase           Phase          `json:"phase"`
	Mode            Mode           `json:"mode"`
	Datetime        string         `json:"datetime"`
	Timezone        string         `json:"timezone"`
	Debug           bool           `json:"debug"`
	Token           string         `json:"token,omitempty"`
	URL             string         `json:"url"`
	ReloadScheduled bool           `json:"reload_scheduled"`
	ReadyCount      int            `json:"ready_count"`
	Widgets         []WidgetStatus `json:"widgets"`
}

type WidgetFinishedEvent struct {
	ReportURL string    `json:"report_url"`
	WidgetID  string    `json:"widget_id"`
	Slug      string    `json:"slug"`
	State     string    `json:"state"`
	JobID     string    `json:"job_id,omitempty"`
	Message   string    `json:"message,omitempty"`
	At        time.Time `json:"at"`
}

type ReportReadyEvent struct {
	ReportURL string    `json:"report_url"`
	Mode      string    `json:"mode"`
	Datetime  string    `json:"datetime"`
	Timezone  string    `json:"timezone"`
	Token     string    `json:"token,omitempty"`
	Widgets   int       `json:"widgets"`
	Failed    int       `json:"failed"`
	At        time.Time `json:"at"`
}
