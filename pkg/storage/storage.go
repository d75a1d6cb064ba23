package storage

import (
	"context"
	"fmt"
	"io"

	"culinary-hub/pkg/config"
)

// Storage puts objects under a key and returns a publicly reachable URL.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New picks the driver named by STORAGE_DRIVER.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "s3", "":
		return NewS3Client(cfg)
	case "minio":
		return NewMinioClient(cfg)
	case "cloudinary":
		return NewCloudinaryClient(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
