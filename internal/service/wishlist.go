package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
)

// WishlistService implements the business logic for user wishlists. Every
// operation requires an authenticated user; the handler layer rejects
// anonymous callers before the service is reached.
type WishlistService struct {
	wishlists repository.WishlistRepository
	artworks  repository.ArtworkRepository
	logger    *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(wishlists repository.WishlistRepository, artworks repository.ArtworkRepository, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		artworks:  artworks,
		logger:    logger,
	}
}

// Add puts an artwork on the user's wishlist. The returned bool reports
// whether the entry was actually written; false means the artwork was
// already on the list and nothing changed.
func (s *WishlistService) Add(ctx context.Context, userID, artworkID string) (bool, error) {
	if userID == "" {
		return false, apperrors.Unauthorized("authentication required")
	}
	if artworkID == "" {
		return false, apperrors.InvalidInput("artwork id is required")
	}

	if _, err := s.artworks.GetByID(ctx, artworkID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.NotFound("artwork", artworkID)
		}
		return false, fmt.Errorf("get artwork for wishlist: %w", err)
	}

	added, err := s.wishlists.Add(ctx, userID, artworkID)
	if err != nil {
		return false, fmt.Errorf("add to wishlist: %w", err)
	}

	if added {
		s.logger.DebugContext(ctx, "wishlist item added",
			slog.String("user_id", userID),
			slog.String("artwork_id", artworkID),
		)
	}

	return added, nil
}

// Remove takes an artwork off the user's wishlist. Removing an artwork that
// is not on the list returns ErrNotFound.
func (s *WishlistService) Remove(ctx context.Context, userID, artworkID string) error {
	if userID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	if artworkID == "" {
		return apperrors.InvalidInput("artwork id is required")
	}

	if err := s.wishlists.Remove(ctx, userID, artworkID); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}

	return nil
}

// List returns the user's wishlist, newest first.
func (s *WishlistService) List(ctx context.Context, userID string, params pagination.Params) (*pagination.Result[domain.WishlistEntry], error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}

	entries, total, err := s.wishlists.List(ctx, userID, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	result := pagination.NewResult(entries, total, params)
	return &result, nil
}

// Contains reports whether an artwork is on the user's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID, artworkID string) (bool, error) {
	if userID == "" {
		return false, apperrors.Unauthorized("authentication required")
	}
	if artworkID == "" {
		return false, apperrors.InvalidInput("artwork id is required")
	}

	ok, err := s.wishlists.Exists(ctx, userID, artworkID)
	if err != nil {
		return false, fmt.Errorf("check wishlist: %w", err)
	}

	return ok, nil
}
