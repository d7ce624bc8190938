package job

import (
	"context"

	"report-runtime/internal/model"
)

// Client speaks the async job contract of the report server. It never
// schedules polls itself; callers decide the cadence.
type Client interface {
	// Submit creates a job for criteria at a widget's post URL.
	Submit(ctx context.Context, postURL string, criteria model.Criteria) (Handle, error)
	// Poll fetches the current status of a job.
	Poll(ctx context.Context, h Handle) (Result, error)
	// PollExport fetches the lighter status resource of an export job.
	PollExport(ctx context.Context, h Handle) (Result, error)
	// RefreshCriteria asks a widget's update URL for its current criteria and time window.
	RefreshCriteria(ctx context.Context, updateURL string) (model.Meta, model.Criteria, error)
	// ExportURL is the download location of a finished job's data.
	ExportURL(jobID string, format Format, filename string) string
	// Download fetches an export URL.
	Download(ctx context.Context, url string) ([]byte, error)
}
