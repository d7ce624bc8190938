package minio

import (
	"strings"

	"report-runtime/config"
)

// validateConfig fills in the default port when the endpoint has none.
func validateConfig(cfg *config.MinIOConfig) error {
	switch {
	case cfg == nil:
		return invalidInput("config is required")
	case cfg.Endpoint == "":
		return invalidInput("endpoint is required")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return invalidInput("access and secret keys are required")
	}
	if !strings.Contains(cfg.Endpoint, ":") {
		cfg.Endpoint += defaultPort
	}
	return validateBucketName(cfg.Bucket)
}

func validateObject(obj Object) error {
	if err := validateBucketName(obj.Bucket); err != nil {
		return err
	}
	if err := validateObjectName(obj.Name); err != nil {
		return err
	}
	switch {
	case obj.Body == nil:
		return invalidInput("body is required")
	case obj.Size <= 0:
		return invalidInput("size must be positive")
	case obj.Size > maxObjectSize:
		return invalidInput("object cannot exceed 512MB")
	case obj.ContentType == "":
		return invalidInput("content type is required")
	}
	return nil
}

// validateBucketName applies the S3 naming rules, minus dots.
func validateBucketName(name string) error {
	if len(name) < 3 || len(name) > 63 {
		return invalidInput("bucket name must be 3 to 63 characters")
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return invalidInput("bucket name may only hold lowercase letters, digits and hyphens")
		}
	}
	if strings.Contains(name, "--") || name[0] == '-' || name[len(name)-1] == '-' {
		return invalidInput("bucket name has a misplaced hyphen")
	}
	return nil
}

func validateObjectName(name string) error {
	if name == "" {
		return invalidInput("object name is required")
	}
	if strings.Contains(name, `\`) || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return invalidInput("object name must be a relative slash separated path")
	}
	return nil
}
