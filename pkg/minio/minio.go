package minio

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/minio/minio-go/v7"
)

var errNotConnected = errors.New("not connected")

func (m *implMinIO) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.client.ListBuckets(ctx)
	m.connected = err == nil
	return storageErr("connect", err)
}

func (m *implMinIO) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected {
		return &StorageError{Code: CodeConnection, Op: "health_check", Err: errNotConnected}
	}
	_, err := m.client.ListBuckets(ctx)
	return storageErr("health_check", err)
}

func (m *implMinIO) Close() error {
	m.mu.Lock()
	m.connected = false
	m.mu.Unlock()
	return nil
}

func (m *implMinIO) EnsureBucket(ctx context.Context, bucket string) error {
	if err := validateBucketName(bucket); err != nil {
		return err
	}
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return storageErr("bucket_exists", err)
	}
	if exists {
		return nil
	}
	return storageErr("make_bucket", m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.region}))
}

func (m *implMinIO) Put(ctx context.Context, obj Object) (ObjectInfo, error) {
	if err := validateObject(obj); err != nil {
		return ObjectInfo{}, err
	}
	meta := maps.Clone(obj.Metadata)
	if obj.OriginalName != "" {
		if meta == nil {
			meta = make(map[string]string, 1)
		}
		meta[metaOriginalName] = obj.OriginalName
	}
	info, err := m.client.PutObject(ctx, obj.Bucket, obj.Name, obj.Body, obj.Size, minio.PutObjectOptions{
		ContentType:  obj.ContentType,
		UserMetadata: meta,
	})
	if err != nil {
		return ObjectInfo{}, storageErr("put_object", err)
	}
	return ObjectInfo{Bucket: obj.Bucket, Name: obj.Name, Size: info.Size, ETag: info.ETag}, nil
}

func (m *implMinIO) PresignGet(ctx context.Context, bucket, name string, expiry time.Duration) (string, error) {
	if err := validateBucketName(bucket); err != nil {
		return "", err
	}
	if err := validateObjectName(name); err != nil {
		return "", err
	}
	if expiry == 0 {
		expiry = defaultExpiry
	}
	if expiry < 0 || expiry > maxPresignExpiry {
		return "", invalidInput("expiry must be between 0 and 7 days")
	}
	u, err := m.client.PresignedGetObject(ctx, bucket, name, expiry, nil)
	if err != nil {
		return "", storageErr("presign_get", err)
	}
	return u.String(), nil
}
