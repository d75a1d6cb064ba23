package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"culinary-hub/pkg/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrMissingCredentials = errors.New("cloudinary credentials are missing")

const cloudinaryUploadTimeout = 30 * time.Second

type CloudinaryClient struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryClient(cfg *config.Config) (*CloudinaryClient, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, ErrMissingCredentials
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryClient{client: cld, folder: cfg.CloudinaryFolder}, nil
}

// publicID maps an object key to a Cloudinary public id, which carries no extension.
func (c *CloudinaryClient) publicID(key string) string {
	id := strings.TrimSuffix(key, path.Ext(key))
	if c.folder == "" {
		return id
	}
	return c.folder + "/" + id
}

func (c *CloudinaryClient) Upload(ctx context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cloudinaryUploadTimeout)
	defer cancel()

	overwrite := true
	res, err := c.client.Upload.Upload(ctx, body, uploader.UploadParams{
		PublicID:     c.publicID(key),
		Overwrite:    &overwrite,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object to Cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to upload object to Cloudinary: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func (c *CloudinaryClient) Delete(ctx context.Context, key string) error {
	res, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: c.publicID(key)})
	if err != nil {
		return fmt.Errorf("failed to delete object from Cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("failed to delete object from Cloudinary: %s", res.Error.Message)
	}
	return nil
}
