package minio

import (
	"context"
	"fmt"

	"report-runtime/config"
	"report-runtime/config/conn"
	"report-runtime/pkg/minio"
)

var client conn.Singleton[minio.MinIO]

// Connect opens the export store once and makes sure its bucket exists.
func Connect(ctx context.Context, cfg *config.MinIOConfig) (minio.MinIO, error) {
	return client.Connect(func() (minio.MinIO, error) {
		c, err := minio.NewMinIO(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create MinIO client: %w", err)
		}
		if err := c.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
		}
		if err := c.EnsureBucket(ctx, cfg.Bucket); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to prepare export bucket %s: %w", cfg.Bucket, err)
		}
		return c, nil
	})
}

func Disconnect() error {
	return client.Close(func(c minio.MinIO) error { return c.Close() })
}
