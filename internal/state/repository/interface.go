package repository

import "context"

// Repository is a byte store that never overwrites a key.
//
//go:generate mockery --name Repository
type Repository interface {
	// PutIfAbsent writes value at key only when key is free. It reports
	// whether the value was written. A full store returns ErrQuotaExceeded.
	PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
	// Get returns the value at key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Clear removes every key starting with prefix.
	Clear(ctx context.Context, prefix string) error
}
