package memory

import (
	"context"
	"fmt"
	"sync"

	"report-runtime/internal/export"
)

// Repository keeps exports in process memory. It backs the runtime when
// object storage is disabled.
type Repository struct {
	mu      sync.Mutex
	exports []export.Export
}

var _ export.Repository = (*Repository)(nil)

// New creates an empty in-memory export repository.
func New() *Repository {
	return &Repository{}
}

func (r *Repository) Store(ctx context.Context, e export.Export) (string, error) {
	if len(e.Data) == 0 {
		return "", export.ErrEmptyExport
	}
	e.Data = append([]byte(nil), e.Data...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports = append(r.exports, e)
	return fmt.Sprintf("memory://exports/%d/%s.%s", len(r.exports), export.SanitizeFilename(e.Filename), e.Format), nil
}

// List returns a copy of everything stored so far.
func (r *Repository) List() []export.Export {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]export.Export(nil), r.exports...)
}
