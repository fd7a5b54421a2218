package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/database"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

// MediaRepository implements repository.MediaRepository using PostgreSQL.
type MediaRepository struct {
	db database.DBTX
}

// NewMediaRepository creates a new PostgreSQL-backed media repository.
func NewMediaRepository(db database.DBTX) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create records an uploaded file.
func (r *MediaRepository) Create(ctx context.Context, f *domain.MediaFile) error {
	query := `
		INSERT INTO media_files (id, kind, file_name, original_name, content_type, size, url, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		f.ID,
		f.Kind,
		f.FileName,
		f.OriginalName,
		f.ContentType,
		f.Size,
		f.URL,
		f.UploadedBy,
		f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert media file: %w", err)
	}

	return nil
}

// GetByID retrieves a file record by its ID.
func (r *MediaRepository) GetByID(ctx context.Context, id string) (*domain.MediaFile, error) {
	query := `
		SELECT id, kind, file_name, original_name, content_type, size, url, uploaded_by, created_at
		FROM media_files
		WHERE id = $1`

	var f domain.MediaFile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.Kind,
		&f.FileName,
		&f.OriginalName,
		&f.ContentType,
		&f.Size,
		&f.URL,
		&f.UploadedBy,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan media file: %w", err)
	}

	return &f, nil
}

// Delete removes a file record by its ID.
func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM media_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media file: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("media file", id)
	}

	return nil
}
