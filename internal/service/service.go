// Package service implements the application's use cases on top of the
// repositories, media pipeline and event publisher.
package service

import (
	"context"
	"errors"
	"log/slog"

	"vidtube/internal/events"
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// MediaUploader is the part of media.Uploader the services depend on.
type MediaUploader interface {
	UploadVideo(ctx context.Context, ownerID uuid.UUID, f *media.File) (*media.Upload, error)
	UploadImage(ctx context.Context, kind string, ownerID uuid.UUID, f *media.File) (*media.Upload, error)
	Remove(ctx context.Context, keys ...string)
}

// NormalizePage applies the listing defaults and caps limit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// lookupError maps a missing row to a NotFound AppError for resource/id.
func lookupError(err error, resource string, id uuid.UUID) error {
	if repository.IsNotFound(err) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}

// uploadError reports unsupported formats as a client error and anything
// else as an UploadFailure.
func uploadError(message string, err error) error {
	if errors.Is(err, media.ErrUnsupportedVideo) || errors.Is(err, media.ErrUnsupportedImage) {
		return models.NewValidationError(err.Error())
	}
	return models.NewUploadError(message, err)
}

// requireExists turns a false existence check into NotFound.
func requireExists(exists bool, err error, resource string, id uuid.UUID) error {
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}

// publish hands e to the broker. Failures are logged, never returned: the
// write that produced the event has already committed.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		middleware.Logger.WarnContext(ctx, "event publish failed",
			slog.String("type", e.Type),
			slog.String("error", err.Error()))
	}
}
