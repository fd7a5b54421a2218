package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/slug"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// ArtworkService implements the business logic for the gallery catalog.
type ArtworkService struct {
	artworks repository.ArtworkRepository
	logger   *slog.Logger
}

// NewArtworkService creates a new artwork service.
func NewArtworkService(artworks repository.ArtworkRepository, logger *slog.Logger) *ArtworkService {
	return &ArtworkService{
		artworks: artworks,
		logger:   logger,
	}
}

// CreateArtworkInput is the input for creating an artwork.
type CreateArtworkInput struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"required"`
	Medium      string `json:"medium" validate:"required"`
	Style       string `json:"style" validate:"required"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Dimensions  string `json:"dimensions" validate:"max=100"`
	YearCreated *int   `json:"year_created" validate:"omitempty,gte=1000,lte=2100"`
	IsAvailable *bool  `json:"is_available"`
	IsFeatured  bool   `json:"is_featured"`
}

// UpdateArtworkInput is the input for updating an artwork. Nil fields are
// left untouched.
type UpdateArtworkInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Category    *string `json:"category"`
	Medium      *string `json:"medium"`
	Style       *string `json:"style"`
	Price       *int64  `json:"price" validate:"omitempty,gt=0"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	Dimensions  *string `json:"dimensions" validate:"omitempty,max=100"`
	YearCreated *int    `json:"year_created" validate:"omitempty,gte=1000,lte=2100"`
	IsAvailable *bool   `json:"is_available"`
	IsFeatured  *bool   `json:"is_featured"`
}

// ListArtworkInput carries catalog listing filters.
type ListArtworkInput struct {
	Search      *string
	Category    *string
	Medium      *string
	Style       *string
	MinPrice    *int64
	MaxPrice    *int64
	IsAvailable *bool
	IsFeatured  *bool
	Pagination  pagination.Params
}

// Create adds a new artwork to the catalog. The slug is derived from the
// title; a duplicate slug gets a short random suffix.
func (s *ArtworkService) Create(ctx context.Context, input CreateArtworkInput) (*domain.Artwork, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if !domain.IsValidCategory(input.Category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid category %q", input.Category))
	}
	if !domain.IsValidMedium(input.Medium) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid medium %q", input.Medium))
	}
	if !domain.IsValidStyle(input.Style) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid style %q", input.Style))
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	now := time.Now().UTC()
	artwork := &domain.Artwork{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Slug:        slug.Generate(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Medium:      input.Medium,
		Style:       input.Style,
		Price:       input.Price,
		Currency:    currency,
		ImageURL:    input.ImageURL,
		Dimensions:  input.Dimensions,
		YearCreated: input.YearCreated,
		IsAvailable: available,
		IsFeatured:  input.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.artworks.Create(ctx, artwork)
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		// Slug collision. Retry once with a suffix derived from the ID.
		artwork.Slug = fmt.Sprintf("%s-%s", artwork.Slug, artwork.ID[:8])
		err = s.artworks.Create(ctx, artwork)
	}
	if err != nil {
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	s.logger.InfoContext(ctx, "artwork created",
		slog.String("artwork_id", artwork.ID),
		slog.String("slug", artwork.Slug),
	)

	return artwork, nil
}

// GetByID retrieves an artwork by ID. Public callers only see available
// pieces; admin callers see everything.
func (s *ArtworkService) GetByID(ctx context.Context, id string, includeUnavailable bool) (*domain.Artwork, error) {
	artwork, err := s.artworks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artwork: %w", err)
	}
	if !includeUnavailable && !artwork.IsAvailable {
		return nil, apperrors.NotFound("artwork", id)
	}
	return artwork, nil
}

// GetBySlug retrieves an artwork by slug for public detail pages.
func (s *ArtworkService) GetBySlug(ctx context.Context, slugValue string) (*domain.Artwork, error) {
	artwork, err := s.artworks.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, fmt.Errorf("get artwork by slug: %w", err)
	}
	if !artwork.IsAvailable {
		return nil, apperrors.NotFound("artwork", slugValue)
	}
	return artwork, nil
}

// List returns a paginated catalog page. Public callers always get
// is_available=true forced onto the filter regardless of what they asked for.
func (s *ArtworkService) List(ctx context.Context, input ListArtworkInput, includeUnavailable bool) (*pagination.Result[domain.Artwork], error) {
	filter := repository.ArtworkFilter{
		Search:      input.Search,
		Category:    input.Category,
		Medium:      input.Medium,
		Style:       input.Style,
		MinPrice:    input.MinPrice,
		MaxPrice:    input.MaxPrice,
		IsAvailable: input.IsAvailable,
		IsFeatured:  input.IsFeatured,
		Page:        input.Pagination.Page,
		PerPage:     input.Pagination.PerPage,
	}

	if !includeUnavailable {
		available := true
		filter.IsAvailable = &available
	}

	if filter.Category != nil && !domain.IsValidCategory(*filter.Category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid category %q", *filter.Category))
	}
	if filter.Medium != nil && !domain.IsValidMedium(*filter.Medium) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid medium %q", *filter.Medium))
	}
	if filter.Style != nil && !domain.IsValidStyle(*filter.Style) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid style %q", *filter.Style))
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, apperrors.InvalidInput("min_price cannot exceed max_price")
	}

	artworks, total, err := s.artworks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list artwork: %w", err)
	}

	result := pagination.NewResult(artworks, total, input.Pagination)
	return &result, nil
}

// Update modifies an artwork. Changing the title regenerates the slug.
func (s *ArtworkService) Update(ctx context.Context, id string, input UpdateArtworkInput) (*domain.Artwork, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	artwork, err := s.artworks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artwork for update: %w", err)
	}

	if input.Title != nil {
		artwork.Title = *input.Title
		artwork.Slug = slug.Generate(*input.Title)
	}
	if input.Description != nil {
		artwork.Description = *input.Description
	}
	if input.Category != nil {
		if !domain.IsValidCategory(*input.Category) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid category %q", *input.Category))
		}
		artwork.Category = *input.Category
	}
	if input.Medium != nil {
		if !domain.IsValidMedium(*input.Medium) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid medium %q", *input.Medium))
		}
		artwork.Medium = *input.Medium
	}
	if input.Style != nil {
		if !domain.IsValidStyle(*input.Style) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid style %q", *input.Style))
		}
		artwork.Style = *input.Style
	}
	if input.Price != nil {
		artwork.Price = *input.Price
	}
	if input.ImageURL != nil {
		artwork.ImageURL = *input.ImageURL
	}
	if input.Dimensions != nil {
		artwork.Dimensions = *input.Dimensions
	}
	if input.YearCreated != nil {
		artwork.YearCreated = input.YearCreated
	}
	if input.IsAvailable != nil {
		artwork.IsAvailable = *input.IsAvailable
	}
	if input.IsFeatured != nil {
		artwork.IsFeatured = *input.IsFeatured
	}

	artwork.UpdatedAt = time.Now().UTC()

	if err := s.artworks.Update(ctx, artwork); err != nil {
		return nil, fmt.Errorf("update artwork: %w", err)
	}

	s.logger.InfoContext(ctx, "artwork updated", slog.String("artwork_id", artwork.ID))

	return artwork, nil
}

// Delete removes an artwork from the catalog.
func (s *ArtworkService) Delete(ctx context.Context, id string) error {
	if err := s.artworks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}

	s.logger.InfoContext(ctx, "artwork deleted", slog.String("artwork_id", id))

	return nil
}
