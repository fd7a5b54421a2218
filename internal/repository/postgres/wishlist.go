package postgres

import (
	"context"
	"fmt"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/database"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	db database.DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(db database.DBTX) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add inserts an artwork into the user's wishlist. An entry that is already
// present is left untouched (ON CONFLICT DO NOTHING affects zero rows), and
// the returned bool tells the two cases apart.
func (r *WishlistRepository) Add(ctx context.Context, userID, artworkID string) (bool, error) {
	query := `
		INSERT INTO wishlists (user_id, artwork_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, artwork_id) DO NOTHING`

	ct, err := r.db.Exec(ctx, query, userID, artworkID)
	if err != nil {
		return false, fmt.Errorf("insert wishlist entry: %w", err)
	}

	return ct.RowsAffected() == 1, nil
}

// Remove deletes an artwork from the user's wishlist. Removing an artwork
// that is not present returns ErrNotFound.
func (r *WishlistRepository) Remove(ctx context.Context, userID, artworkID string) error {
	query := `DELETE FROM wishlists WHERE user_id = $1 AND artwork_id = $2`

	ct, err := r.db.Exec(ctx, query, userID, artworkID)
	if err != nil {
		return fmt.Errorf("delete wishlist entry: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("wishlist entry", artworkID)
	}

	return nil
}

// List returns the user's wishlist newest first with the total count.
// Artwork details are joined in so list views need no second fetch.
func (r *WishlistRepository) List(ctx context.Context, userID string, page, perPage int) ([]domain.WishlistEntry, int, error) {
	query := `
		SELECT w.user_id, w.artwork_id, w.created_at,
			   a.title, a.price, a.image_url, a.category,
			   count(*) OVER() AS total_count
		FROM wishlists w
		JOIN artwork a ON a.id = w.artwork_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
		LIMIT $2 OFFSET $3`

	limit := perPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wishlist entries: %w", err)
	}
	defer rows.Close()

	var (
		entries    []domain.WishlistEntry
		totalCount int
	)

	for rows.Next() {
		var (
			e     domain.WishlistEntry
			price int64
		)
		if err := rows.Scan(
			&e.UserID,
			&e.ArtworkID,
			&e.CreatedAt,
			&e.Title,
			&price,
			&e.ImageURL,
			&e.Category,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan wishlist row: %w", err)
		}
		e.Price = &price
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	if entries == nil {
		entries = []domain.WishlistEntry{}
	}

	return entries, totalCount, nil
}

// Exists checks whether an artwork is in the user's wishlist.
func (r *WishlistRepository) Exists(ctx context.Context, userID, artworkID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wishlists WHERE user_id = $1 AND artwork_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, artworkID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wishlist entry: %w", err)
	}

	return exists, nil
}
