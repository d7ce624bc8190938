package repository

import "errors"

var (
	ErrQuotaExceeded = errors.New("repository: storage quota exceeded")
	ErrWriteFailed   = errors.New("repository: failed to write report state")
	ErrReadFailed    = errors.New("repository: failed to read report state")
	ErrClearFailed   = errors.New("repository: failed to clear report states")
)
