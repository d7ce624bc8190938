package kafka

import "time"

// WidgetFinishedMessage is emitted each time a widget leaves running.
type WidgetFinishedMessage struct {
	ReportURL  string    `json:"report_url"`
	WidgetID   string    `json:"widget_id"`
	Slug       string    `json:"slug,omitempty"`
	State      string    `json:"state"`
	JobID      string    `json:"job_id,omitempty"`
	Message    string    `json:"message,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// ReportReadyMessage is emitted once per loading cycle.
type ReportReadyMessage struct {
	ReportURL     string    `json:"report_url"`
	Mode          string    `json:"mode"`
	Datetime      string    `json:"datetime"`
	Timezone      string    `json:"timezone"`
	Token         string    `json:"token,omitempty"`
	WidgetCount   int       `json:"widget_count"`
	FailedWidgets int       `json:"failed_widgets"`
	ReadyAt       time.Time `json:"ready_at"`
}
