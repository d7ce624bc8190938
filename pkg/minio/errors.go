package minio

import (
	"fmt"

	"github.com/minio/minio-go/v7"
)

const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeConnection     = "CONNECTION"
	CodeBucketNotFound = "BUCKET_NOT_FOUND"
	CodeObjectNotFound = "OBJECT_NOT_FOUND"
	CodePermission     = "PERMISSION_DENIED"
)

// StorageError is returned by every failed operation.
type StorageError struct {
	Code string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("minio %s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func invalidInput(msg string) *StorageError {
	return &StorageError{Code: CodeInvalidInput, Op: "validate", Err: fmt.Errorf("%s", msg)}
}

// storageErr classifies an S3 error response. It returns nil for a nil err.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	code := CodeConnection
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchBucket":
		code = CodeBucketNotFound
	case "NoSuchKey":
		code = CodeObjectNotFound
	case "AccessDenied":
		code = CodePermission
	}
	return &StorageError{Code: code, Op: op, Err: err}
}
