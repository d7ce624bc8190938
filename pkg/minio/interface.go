// Package minio stores exported widget data in an S3 compatible bucket.
package minio

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"report-runtime/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	maxObjectSize     = 512 << 20
	maxPresignExpiry  = 7 * 24 * time.Hour
	defaultExpiry     = time.Hour
	defaultPort       = ":9000"
	metaOriginalName  = "original-name"
	transportIdleConn = 20
)

// MinIO is safe for concurrent use.
type MinIO interface {
	Connect(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Close() error
	// EnsureBucket creates bucket when it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error
	Put(ctx context.Context, obj Object) (ObjectInfo, error)
	// PresignGet returns a download link valid for expiry (one hour when zero).
	PresignGet(ctx context.Context, bucket, name string, expiry time.Duration) (string, error)
}

// Object is one upload. Size must match what Body yields.
type Object struct {
	Bucket       string
	Name         string
	OriginalName string
	Body         io.Reader
	Size         int64
	ContentType  string
	Metadata     map[string]string
}

type ObjectInfo struct {
	Bucket string
	Name   string
	Size   int64
	ETag   string
}

type implMinIO struct {
	client    *minio.Client
	region    string
	mu        sync.RWMutex
	connected bool
}

// NewMinIO validates cfg and builds the client. No request is made until Connect.
func NewMinIO(cfg *config.MinIOConfig) (MinIO, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
		Transport: &http.Transport{
			MaxIdleConns:        transportIdleConn,
			MaxIdleConnsPerHost: transportIdleConn,
			IdleConnTimeout:     90 * time.Second,
		},
	})
	if err != nil {
		return nil, err
	}
	return &implMinIO{client: client, region: cfg.Region}, nil
}
