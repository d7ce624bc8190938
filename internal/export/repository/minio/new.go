package minio

import (
	"time"

	"report-runtime/internal/export"
	"report-runtime/pkg/log"
	pkgMinio "report-runtime/pkg/minio"
)

// Config selects where exports land.
type Config struct {
	Bucket string
	// Prefix is prepended to every object name.
	Prefix string
	// LinkExpiry is how long returned download links stay valid.
	LinkExpiry time.Duration
}

type implRepository struct {
	l     log.Logger
	minio pkgMinio.MinIO
	cfg   Config
	now   func() time.Time
}

// New creates a MinIO-backed export repository.
func New(l log.Logger, m pkgMinio.MinIO, cfg Config) export.Repository {
	return &implRepository{l: l, minio: m, cfg: cfg, now: time.Now}
}
