package export

import "context"

// Repository stores exported widget data and debug archives.
type Repository interface {
	// Store saves the export and returns where it can be fetched from.
	Store(ctx context.Context, e Export) (string, error)
}
