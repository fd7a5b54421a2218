package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/event"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/pagination"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// CommissionService implements the business logic for commission packages
// and customer commission requests.
type CommissionService struct {
	packages repository.CommissionPackageRepository
	requests repository.CommissionRequestRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCommissionService creates a new commission service.
func NewCommissionService(
	packages repository.CommissionPackageRepository,
	requests repository.CommissionRequestRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *CommissionService {
	return &CommissionService{
		packages: packages,
		requests: requests,
		producer: producer,
		logger:   logger,
	}
}

// CreatePackageInput is the input for creating a commission package.
type CreatePackageInput struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Description    string `json:"description" validate:"max=5000"`
	BasePrice      int64  `json:"base_price" validate:"required,gt=0"`
	Currency       string `json:"currency" validate:"omitempty,len=3"`
	TurnaroundDays int    `json:"turnaround_days" validate:"omitempty,gt=0"`
	ImageURL       string `json:"image_url" validate:"omitempty,url"`
	IsActive       *bool  `json:"is_active"`
	SortOrder      int    `json:"sort_order"`
}

// UpdatePackageInput is the input for updating a commission package. Nil
// fields are left untouched.
type UpdatePackageInput struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=5000"`
	BasePrice      *int64  `json:"base_price" validate:"omitempty,gt=0"`
	TurnaroundDays *int    `json:"turnaround_days" validate:"omitempty,gt=0"`
	ImageURL       *string `json:"image_url" validate:"omitempty,url"`
	IsActive       *bool   `json:"is_active"`
	SortOrder      *int    `json:"sort_order"`
}

// CreateRequestInput is the input for submitting a commission request.
type CreateRequestInput struct {
	PackageID     *string  `json:"package_id" validate:"omitempty,uuid"`
	CustomerName  string   `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerEmail string   `json:"customer_email" validate:"required,email"`
	CustomerPhone string   `json:"customer_phone" validate:"max=50"`
	Description   string   `json:"description" validate:"required,min=10,max=10000"`
	ReferenceURLs []string `json:"reference_urls" validate:"omitempty,max=10,dive,url"`
}

// UpdateRequestStatusInput is the admin input for moving a request through
// its lifecycle.
type UpdateRequestStatusInput struct {
	Status      string `json:"status" validate:"required"`
	QuoteAmount *int64 `json:"quote_amount" validate:"omitempty,gt=0"`
	AdminNotes  string `json:"admin_notes" validate:"max=5000"`
}

// CreatePackage adds a new commission offering.
func (s *CommissionService) CreatePackage(ctx context.Context, input CreatePackageInput) (*domain.CommissionPackage, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	pkg := &domain.CommissionPackage{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Description:    input.Description,
		BasePrice:      input.BasePrice,
		Currency:       currency,
		TurnaroundDays: input.TurnaroundDays,
		ImageURL:       input.ImageURL,
		IsActive:       active,
		SortOrder:      input.SortOrder,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("create commission package: %w", err)
	}

	s.logger.InfoContext(ctx, "commission package created", slog.String("package_id", pkg.ID))

	return pkg, nil
}

// GetPackage retrieves a single package. Public callers never see inactive
// packages.
func (s *CommissionService) GetPackage(ctx context.Context, id string, includeInactive bool) (*domain.CommissionPackage, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get commission package: %w", err)
	}
	if !includeInactive && !pkg.IsActive {
		return nil, apperrors.NotFound("commission package", id)
	}
	return pkg, nil
}

// ListPackages returns packages in display order. Public callers get active
// packages only.
func (s *CommissionService) ListPackages(ctx context.Context, includeInactive bool) ([]domain.CommissionPackage, error) {
	pkgs, err := s.packages.List(ctx, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list commission packages: %w", err)
	}
	return pkgs, nil
}

// UpdatePackage modifies a commission package.
func (s *CommissionService) UpdatePackage(ctx context.Context, id string, input UpdatePackageInput) (*domain.CommissionPackage, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get commission package for update: %w", err)
	}

	if input.Name != nil {
		pkg.Name = *input.Name
	}
	if input.Description != nil {
		pkg.Description = *input.Description
	}
	if input.BasePrice != nil {
		pkg.BasePrice = *input.BasePrice
	}
	if input.TurnaroundDays != nil {
		pkg.TurnaroundDays = *input.TurnaroundDays
	}
	if input.ImageURL != nil {
		pkg.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		pkg.SortOrder = *input.SortOrder
	}

	pkg.UpdatedAt = time.Now().UTC()

	if err := s.packages.Update(ctx, pkg); err != nil {
		return nil, fmt.Errorf("update commission package: %w", err)
	}

	return pkg, nil
}

// DeletePackage removes a commission package.
func (s *CommissionService) DeletePackage(ctx context.Context, id string) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete commission package: %w", err)
	}

	s.logger.InfoContext(ctx, "commission package deleted", slog.String("package_id", id))

	return nil
}

// CreateRequest submits a new commission request. When a package is
// referenced it must exist and be active. New requests start in pending.
func (s *CommissionService) CreateRequest(ctx context.Context, input CreateRequestInput, userID *string) (*domain.CommissionRequest, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	if input.PackageID != nil {
		pkg, err := s.packages.GetByID(ctx, *input.PackageID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NotFound("commission package", *input.PackageID)
			}
			return nil, fmt.Errorf("get package for request: %w", err)
		}
		if !pkg.IsActive {
			return nil, apperrors.NotFound("commission package", *input.PackageID)
		}
	}

	now := time.Now().UTC()
	req := &domain.CommissionRequest{
		ID:            uuid.NewString(),
		PackageID:     input.PackageID,
		UserID:        userID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Description:   input.Description,
		ReferenceURLs: input.ReferenceURLs,
		Status:        domain.CommissionStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create commission request: %w", err)
	}

	if err := s.producer.PublishCommissionRequested(ctx, req); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish commission requested event",
			slog.String("request_id", req.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "commission request created", slog.String("request_id", req.ID))

	return req, nil
}

// GetRequest retrieves a commission request by ID.
func (s *CommissionService) GetRequest(ctx context.Context, id string) (*domain.CommissionRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get commission request: %w", err)
	}
	return req, nil
}

// ListRequests returns commission requests matching the filter.
func (s *CommissionService) ListRequests(ctx context.Context, filter repository.CommissionRequestFilter, params pagination.Params) (*pagination.Result[domain.CommissionRequest], error) {
	if filter.Status != nil && !domain.IsValidCommissionStatus(*filter.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", *filter.Status))
	}

	filter.Page = params.Page
	filter.PerPage = params.PerPage

	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list commission requests: %w", err)
	}

	result := pagination.NewResult(requests, total, params)
	return &result, nil
}

// UpdateRequestStatus moves a request through its lifecycle. A transition
// into quoted requires a quote amount; other transitions must not carry one.
// Invalid transitions are a conflict, not a validation error.
func (s *CommissionService) UpdateRequestStatus(ctx context.Context, id string, input UpdateRequestStatusInput) (*domain.CommissionRequest, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if !domain.IsValidCommissionStatus(input.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", input.Status))
	}
	if input.Status == domain.CommissionStatusQuoted && input.QuoteAmount == nil {
		return nil, apperrors.InvalidInput("quote_amount is required when quoting")
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get commission request for status update: %w", err)
	}

	if !req.CanTransitionTo(input.Status) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot transition commission request from %s to %s", req.Status, input.Status))
	}

	oldStatus := req.Status
	req.Status = input.Status
	if input.QuoteAmount != nil {
		req.QuoteAmount = input.QuoteAmount
	}
	if input.AdminNotes != "" {
		req.AdminNotes = input.AdminNotes
	}
	req.UpdatedAt = time.Now().UTC()

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("update commission request: %w", err)
	}

	if err := s.producer.PublishCommissionStatusChanged(ctx, req, oldStatus); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish commission status changed event",
			slog.String("request_id", req.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "commission request status updated",
		slog.String("request_id", req.ID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", req.Status),
	)

	return req, nil
}
