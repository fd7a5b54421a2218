package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

// CartService implements the business logic for session cart operations.
// The artwork catalog is the source of truth for titles and prices; the
// cart stores a snapshot taken at add time.
type CartService struct {
	carts    repository.CartRepository
	artworks repository.ArtworkRepository
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, artworks repository.ArtworkRepository, logger *slog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		artworks: artworks,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a session. A session with no cart gets an
// empty one.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds one unit of an artwork to the session cart. If the artwork is
// already in the cart its quantity goes up by one; otherwise a new line is
// inserted with quantity 1. Unavailable artwork cannot be added.
func (s *CartService) AddItem(ctx context.Context, sessionID, artworkID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if artworkID == "" {
		return nil, apperrors.InvalidInput("artwork id is required")
	}

	artwork, err := s.artworks.GetByID(ctx, artworkID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("artwork", artworkID)
		}
		return nil, fmt.Errorf("get artwork for cart: %w", err)
	}
	if !artwork.IsAvailable {
		return nil, apperrors.NotFound("artwork", artworkID)
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if i := cart.FindLineIndex(artworkID); i >= 0 {
		cart.Lines[i].Quantity++
		// Refresh the snapshot in case the catalog entry changed.
		cart.Lines[i].Title = artwork.Title
		cart.Lines[i].Price = artwork.Price
		cart.Lines[i].ImageURL = artwork.ImageURL
		cart.Lines[i].Category = artwork.Category
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ArtworkID: artwork.ID,
			Title:     artwork.Title,
			Price:     artwork.Price,
			ImageURL:  artwork.ImageURL,
			Category:  artwork.Category,
			Quantity:  1,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "cart item added",
		slog.String("session_id", sessionID),
		slog.String("artwork_id", artworkID),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of a cart line directly. A quantity of
// zero or less removes the line, exactly like RemoveItem.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, artworkID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if artworkID == "" {
		return nil, apperrors.InvalidInput("artwork id is required")
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, artworkID)
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	i := cart.FindLineIndex(artworkID)
	if i < 0 {
		return nil, apperrors.NotFound("cart item", artworkID)
	}

	cart.Lines[i].Quantity = quantity

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem deletes a cart line. Removing an artwork that is not in the
// cart returns ErrNotFound.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, artworkID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if artworkID == "" {
		return nil, apperrors.InvalidInput("artwork id is required")
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	i := cart.FindLineIndex(artworkID)
	if i < 0 {
		return nil, apperrors.NotFound("cart item", artworkID)
	}

	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// Clear empties the session cart unconditionally.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.Touch()
	if err := s.carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
