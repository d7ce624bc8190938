package state

import (
	"context"

	"report-runtime/internal/model"
)

// UseCase keeps completed reports under history tokens.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// Save stores snapshot under token unless the token is already taken.
	// It reports whether the snapshot was written. Storage failures are
	// logged, never returned.
	Save(ctx context.Context, token string, snapshot model.SavedReportState) bool
	// Restore loads the snapshot for token. A missing token is (nil, false, nil).
	Restore(ctx context.Context, token string) (*model.SavedReportState, bool, error)
	// NewToken returns a fresh time-ordered token.
	NewToken() string
}
