package export

import "errors"

var (
	ErrEmptyExport = errors.New("export has no data")
	ErrStoreFailed = errors.New("failed to store export")
)
