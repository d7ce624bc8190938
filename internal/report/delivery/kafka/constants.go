package kafka

// Event types, carried in the event_type record header.
const (
	EventTypeWidgetFinished = "widget.finished"
	EventTypeReportReady    = "report.ready"
)

const (
	HeaderEventType = "event_type"
	HeaderSource    = "source"

	SourceReportRuntime = "report-runtime"
)
