package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"culinary-hub/internal/entity"
	"culinary-hub/pkg/imageproc"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/storage"

	"github.com/google/uuid"
)

// Upload folders, used as object key prefixes.
const (
	FolderAvatars      = "avatars"
	FolderPosts        = "posts"
	FolderCourses      = "courses"
	FolderRecipes      = "recipes"
	FolderCertificates = "certificates"
)

// EventPublisher is satisfied by *queue.Client.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder string, r io.Reader) (string, error)
}

type imageUploader struct {
	store   storage.Storage
	options imageproc.Options
}

// NewImageUploader re-encodes every upload as WebP before handing it to store.
func NewImageUploader(store storage.Storage, options imageproc.Options) Uploader {
	return &imageUploader{store: store, options: options}
}

func (u *imageUploader) Upload(ctx context.Context, folder string, r io.Reader) (string, error) {
	data, err := imageproc.ToWebP(r, u.options)
	if err != nil {
		if errors.Is(err, imageproc.ErrUnsupportedImage) {
			return "", entity.Invalid("file must be a JPEG, PNG, GIF or WebP image")
		}
		return "", err
	}

	key := fmt.Sprintf("%s/%s.webp", folder, uuid.New().String())
	url, err := u.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), imageproc.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return url, nil
}

// publishEvent runs after the triggering transaction has committed; a
// broker failure is logged and never fails the request.
func publishEvent(ctx context.Context, publisher EventPublisher, log *logger.Logger, routingKey string, event interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, routingKey, event); err != nil {
		log.Error("Failed to publish %s event: %v", routingKey, err)
	}
}

func requireOwner(actor entity.Actor, ownerID uint, action string) error {
	if !actor.Owns(ownerID) {
		return entity.Forbidden("you can only %s your own content", action)
	}
	return nil
}
