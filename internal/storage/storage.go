package storage

import (
	"context"
	"io"
)

// Storage abstracts the blob backend that holds artwork images,
// commission references and payment proof screenshots. Keys are
// "<kind>/<file>" paths generated by the media service.
type Storage interface {
	// Upload writes the blob and returns its key and public URL.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)

	// Delete removes the blob by key.
	Delete(ctx context.Context, key string) error

	// GetURL resolves the public URL for an existing key.
	GetURL(ctx context.Context, key string) (string, error)
}

// UploadInput describes one blob to store.
type UploadInput struct {
	Key         string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult reports where an uploaded blob ended up.
type UploadResult struct {
	Key string
	URL string
}
