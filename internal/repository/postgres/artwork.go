package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/database"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

// ArtworkRepository implements repository.ArtworkRepository using PostgreSQL.
type ArtworkRepository struct {
	db database.DBTX
}

// NewArtworkRepository creates a new PostgreSQL-backed artwork repository.
func NewArtworkRepository(db database.DBTX) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

const artworkColumns = `id, title, slug, description, category, medium, style, price, currency,
	image_url, dimensions, year_created, is_available, is_featured, created_at, updated_at`

// Create inserts a new artwork into the database.
func (r *ArtworkRepository) Create(ctx context.Context, a *domain.Artwork) error {
	query := `
		INSERT INTO artwork (id, title, slug, description, category, medium, style, price, currency,
			image_url, dimensions, year_created, is_available, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Slug,
		a.Description,
		a.Category,
		a.Medium,
		a.Style,
		a.Price,
		a.Currency,
		a.ImageURL,
		a.Dimensions,
		a.YearCreated,
		a.IsAvailable,
		a.IsFeatured,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("artwork", "slug", a.Slug)
		}
		return fmt.Errorf("insert artwork: %w", err)
	}

	return nil
}

// GetByID retrieves an artwork by its ID.
func (r *ArtworkRepository) GetByID(ctx context.Context, id string) (a *domain.Artwork, err error) {
	query := fmt.Sprintf(`SELECT %s FROM artwork WHERE id = $1`, artworkColumns)
	ctx, end := database.TraceQuery(ctx, "GetArtworkByID", query)
	defer func() { end(err) }()
	return r.scanArtwork(ctx, query, id)
}

// GetBySlug retrieves an artwork by its slug.
func (r *ArtworkRepository) GetBySlug(ctx context.Context, slug string) (a *domain.Artwork, err error) {
	query := fmt.Sprintf(`SELECT %s FROM artwork WHERE slug = $1`, artworkColumns)
	ctx, end := database.TraceQuery(ctx, "GetArtworkBySlug", query)
	defer func() { end(err) }()
	return r.scanArtwork(ctx, query, slug)
}

// List returns artwork matching the given filter with the total count. The
// storefront hits this on every gallery page, so the query is traced.
func (r *ArtworkRepository) List(ctx context.Context, filter repository.ArtworkFilter) (artworks []domain.Artwork, totalCount int, err error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}

	if filter.Medium != nil {
		conditions = append(conditions, fmt.Sprintf("medium = $%d", argIndex))
		args = append(args, *filter.Medium)
		argIndex++
	}

	if filter.Style != nil {
		conditions = append(conditions, fmt.Sprintf("style = $%d", argIndex))
		args = append(args, *filter.Style)
		argIndex++
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	if filter.IsAvailable != nil {
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", argIndex))
		args = append(args, *filter.IsAvailable)
		argIndex++
	}

	if filter.IsFeatured != nil {
		conditions = append(conditions, fmt.Sprintf("is_featured = $%d", argIndex))
		args = append(args, *filter.IsFeatured)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// count(*) OVER() returns the total count in the same query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM artwork
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		artworkColumns, whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	ctx, end := database.TraceQuery(ctx, "ListArtwork", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list artwork: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Artwork
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Slug,
			&a.Description,
			&a.Category,
			&a.Medium,
			&a.Style,
			&a.Price,
			&a.Currency,
			&a.ImageURL,
			&a.Dimensions,
			&a.YearCreated,
			&a.IsAvailable,
			&a.IsFeatured,
			&a.CreatedAt,
			&a.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan artwork row: %w", err)
		}
		artworks = append(artworks, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate artwork rows: %w", err)
	}

	if artworks == nil {
		artworks = []domain.Artwork{}
	}

	return artworks, totalCount, nil
}

// Update modifies an existing artwork in the database.
func (r *ArtworkRepository) Update(ctx context.Context, a *domain.Artwork) error {
	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE artwork
		SET title = $1, slug = $2, description = $3, category = $4, medium = $5, style = $6,
		    price = $7, currency = $8, image_url = $9, dimensions = $10, year_created = $11,
		    is_available = $12, is_featured = $13, updated_at = $14
		WHERE id = $15`

	ct, err := r.db.Exec(ctx, query,
		a.Title,
		a.Slug,
		a.Description,
		a.Category,
		a.Medium,
		a.Style,
		a.Price,
		a.Currency,
		a.ImageURL,
		a.Dimensions,
		a.YearCreated,
		a.IsAvailable,
		a.IsFeatured,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("artwork", "slug", a.Slug)
		}
		return fmt.Errorf("update artwork: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("artwork", a.ID)
	}

	return nil
}

// Delete removes an artwork from the database by its ID.
func (r *ArtworkRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM artwork WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("artwork", id)
	}

	return nil
}

// scanArtwork executes a query expected to return a single artwork row.
func (r *ArtworkRepository) scanArtwork(ctx context.Context, query string, args ...any) (*domain.Artwork, error) {
	var a domain.Artwork

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Description,
		&a.Category,
		&a.Medium,
		&a.Style,
		&a.Price,
		&a.Currency,
		&a.ImageURL,
		&a.Dimensions,
		&a.YearCreated,
		&a.IsAvailable,
		&a.IsFeatured,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan artwork: %w", err)
	}

	return &a, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
