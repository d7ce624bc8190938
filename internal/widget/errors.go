package widget

import "errors"

var (
	ErrNotReloadable = errors.New("widget has no submission url")
	ErrNotExportable = errors.New("widget has no job to export")
	ErrExportFailed  = errors.New("widget export failed")
)
