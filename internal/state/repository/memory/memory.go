package memory

import (
	"context"
	"strings"
	"sync"

	"report-runtime/internal/state/repository"
)

// Repository keeps report states in process memory. A positive maxBytes
// caps the total stored bytes the way a browser storage quota does.
type Repository struct {
	mu       sync.Mutex
	items    map[string][]byte
	used     int
	maxBytes int
}

func New(maxBytes int) *Repository {
	return &Repository{items: map[string][]byte{}, maxBytes: maxBytes}
}

func (r *Repository) PutIfAbsent(_ context.Context, key string, value []byte) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[key]; ok {
		return false, nil
	}
	if r.maxBytes > 0 && r.used+len(key)+len(value) > r.maxBytes {
		return false, repository.ErrQuotaExceeded
	}
	r.items[key] = append([]byte(nil), value...)
	r.used += len(key) + len(value)
	return true, nil
}

func (r *Repository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (r *Repository) Clear(_ context.Context, prefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.items {
		if strings.HasPrefix(k, prefix) {
			r.used -= len(k) + len(v)
			delete(r.items, k)
		}
	}
	return nil
}

// Len is the number of stored keys.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
