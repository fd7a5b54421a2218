package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	"github.com/Tazdar-Rahim/artmuse-server/internal/storage"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

// MediaService handles image uploads for artwork photos, commission
// references, and payment proof screenshots.
type MediaService struct {
	storage storage.Storage
	media   repository.MediaRepository
	logger  *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(store storage.Storage, media repository.MediaRepository, logger *slog.Logger) *MediaService {
	return &MediaService{
		storage: store,
		media:   media,
		logger:  logger,
	}
}

// UploadInput is the input for uploading a media file.
type UploadInput struct {
	Kind         string
	OriginalName string
	ContentType  string
	Size         int64
	Data         io.Reader
	UploadedBy   *string
}

// Upload validates and stores an uploaded image, recording its metadata.
func (s *MediaService) Upload(ctx context.Context, input UploadInput) (*domain.MediaFile, error) {
	if !domain.IsValidMediaKind(input.Kind) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid media kind %q", input.Kind))
	}
	if !domain.IsAllowedContentType(input.ContentType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("content type %q is not allowed", input.ContentType))
	}
	if input.Size <= 0 {
		return nil, apperrors.InvalidInput("file is empty")
	}
	if input.Size > domain.MaxFileSize {
		return nil, apperrors.InvalidInput(fmt.Sprintf("file exceeds the %d byte limit", domain.MaxFileSize))
	}

	id := uuid.NewString()
	fileName := id + extensionFor(input.ContentType, input.OriginalName)
	key := path.Join(input.Kind, fileName)

	result, err := s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        io.LimitReader(input.Data, domain.MaxFileSize),
	})
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	file := &domain.MediaFile{
		ID:           id,
		Kind:         input.Kind,
		FileName:     key,
		OriginalName: input.OriginalName,
		ContentType:  input.ContentType,
		Size:         input.Size,
		URL:          result.URL,
		UploadedBy:   input.UploadedBy,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.media.Create(ctx, file); err != nil {
		// Orphaned blobs are cleaned up best effort.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up orphaned upload",
				slog.String("key", key),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, fmt.Errorf("record media upload: %w", err)
	}

	s.logger.InfoContext(ctx, "media uploaded",
		slog.String("media_id", file.ID),
		slog.String("kind", file.Kind),
		slog.Int64("size", file.Size),
	)

	return file, nil
}

// Get retrieves media metadata by ID.
func (s *MediaService) Get(ctx context.Context, id string) (*domain.MediaFile, error) {
	file, err := s.media.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	return file, nil
}

// Delete removes a media file and its metadata record.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	file, err := s.media.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get media for delete: %w", err)
	}

	if err := s.storage.Delete(ctx, file.FileName); err != nil {
		return fmt.Errorf("delete media blob: %w", err)
	}
	if err := s.media.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete media record: %w", err)
	}

	s.logger.InfoContext(ctx, "media deleted", slog.String("media_id", id))

	return nil
}

// extensionFor picks a file extension from the content type, falling back
// to whatever the original name carried.
func extensionFor(contentType, originalName string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if ext := strings.ToLower(path.Ext(originalName)); ext != "" {
		return ext
	}
	return ".bin"
}
