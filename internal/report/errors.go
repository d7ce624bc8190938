package report

import "errors"

var (
	ErrInvalidCriteria     = errors.New("invalid report criteria")
	ErrDefinitionFailed    = errors.New("failed to load report definition")
	ErrWidgetNotFound      = errors.New("widget not found")
	ErrEmbedNotFound       = errors.New("embedded widget not found in report")
	ErrWidgetNotReloadable = errors.New("widget cannot be reloaded")
	ErrInvalidFormat       = errors.New("unsupported export format")
	ErrExportFailed        = errors.New("widget export failed")
	ErrNotStarted          = errors.New("report has no widgets")
)

// CriteriaError carries the server's form validation output.
type CriteriaError struct {
	Body string
}

func (e *CriteriaError) Error() string {
	return ErrInvalidCriteria.Error()
}

func (e *CriteriaError) Unwrap() error {
	return ErrInvalidCriteria
}
