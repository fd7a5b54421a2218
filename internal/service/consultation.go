package service

import (
	"context"
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

// ConsultationService implements the business logic for consultation
// bookings.
type ConsultationService struct {
	bookings repository.ConsultationRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewConsultationService creates a new consultation service.
func NewConsultationService(bookings repository.ConsultationRepository, producer *event.Producer, logger *slog.Logger) *ConsultationService {
	return &ConsultationService{
		bookings: bookings,
		producer: producer,
		logger:   logger,
	}
}

// CreateBookingInput is the input for booking a consultation.
type CreateBookingInput struct {
	CustomerName  string `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"max=50"`
	PreferredDate string `json:"preferred_date" validate:"required,datetime=2006-01-02"`
	PreferredTime string `json:"preferred_time" validate:"required,datetime=15:04"`
	Topic         string `json:"topic" validate:"required,min=1,max=500"`
	Notes         string `json:"notes" validate:"max=5000"`
}

// RescheduleBookingInput is the input for moving a booking to a new slot.
type RescheduleBookingInput struct {
	PreferredDate string `json:"preferred_date" validate:"required,datetime=2006-01-02"`
	PreferredTime string `json:"preferred_time" validate:"required,datetime=15:04"`
}

// UpdateBookingStatusInput is the admin input for changing booking status.
type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// CreateBooking books a new consultation. The requested slot must be in the
// future. New bookings start in pending.
func (s *ConsultationService) CreateBooking(ctx context.Context, input CreateBookingInput, userID *string) (*domain.ConsultationBooking, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if err := validateFutureSlot(input.PreferredDate, input.PreferredTime); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &domain.ConsultationBooking{
		ID:            uuid.NewString(),
		UserID:        userID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		PreferredDate: input.PreferredDate,
		PreferredTime: input.PreferredTime,
		Topic:         input.Topic,
		Notes:         input.Notes,
		Status:        domain.ConsultationStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create consultation booking: %w", err)
	}

	if err := s.producer.PublishConsultationBooked(ctx, booking); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish consultation booked event",
			slog.String("booking_id", booking.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "consultation booked", slog.String("booking_id", booking.ID))

	return booking, nil
}

// GetBooking retrieves a booking by ID.
func (s *ConsultationService) GetBooking(ctx context.Context, id string) (*domain.ConsultationBooking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get consultation booking: %w", err)
	}
	return booking, nil
}

// ListBookings returns bookings matching the filter, soonest slot first.
func (s *ConsultationService) ListBookings(ctx context.Context, filter repository.ConsultationFilter, params pagination.Params) (*pagination.Result[domain.ConsultationBooking], error) {
	if filter.Status != nil && !domain.IsValidConsultationStatus(*filter.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", *filter.Status))
	}

	filter.Page = params.Page
	filter.PerPage = params.PerPage

	bookings, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list consultation bookings: %w", err)
	}

	result := pagination.NewResult(bookings, total, params)
	return &result, nil
}

// UpdateStatus moves a booking through its lifecycle.
func (s *ConsultationService) UpdateStatus(ctx context.Context, id string, input UpdateBookingStatusInput) (*domain.ConsultationBooking, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if !domain.IsValidConsultationStatus(input.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", input.Status))
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get consultation booking for status update: %w", err)
	}

	if !booking.CanTransitionTo(input.Status) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot transition consultation booking from %s to %s", booking.Status, input.Status))
	}

	oldStatus := booking.Status
	booking.Status = input.Status
	booking.UpdatedAt = time.Now().UTC()

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update consultation booking: %w", err)
	}

	s.logger.InfoContext(ctx, "consultation status updated",
		slog.String("booking_id", booking.ID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", booking.Status),
	)

	return booking, nil
}

// Reschedule moves a booking to a new slot. Terminal bookings cannot be
// rescheduled.
func (s *ConsultationService) Reschedule(ctx context.Context, id string, input RescheduleBookingInput) (*domain.ConsultationBooking, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if err := validateFutureSlot(input.PreferredDate, input.PreferredTime); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get consultation booking for reschedule: %w", err)
	}

	if booking.Status == domain.ConsultationStatusCompleted || booking.Status == domain.ConsultationStatusCancelled {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot reschedule a %s consultation", booking.Status))
	}

	oldDate, oldTime := booking.PreferredDate, booking.PreferredTime
	booking.PreferredDate = input.PreferredDate
	booking.PreferredTime = input.PreferredTime
	booking.UpdatedAt = time.Now().UTC()

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("reschedule consultation booking: %w", err)
	}

	if err := s.producer.PublishConsultationRescheduled(ctx, booking, oldDate, oldTime); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish consultation rescheduled event",
			slog.String("booking_id", booking.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "consultation rescheduled",
		slog.String("booking_id", booking.ID),
		slog.String("new_date", booking.PreferredDate),
		slog.String("new_time", booking.PreferredTime),
	)

	return booking, nil
}

// validateFutureSlot rejects slots in the past. Slot times are interpreted
// in UTC.
func validateFutureSlot(date, timeOfDay string) error {
	slot, err := time.Parse("2006-01-02 15:04", date+" "+timeOfDay)
	if err != nil {
		return apperrors.InvalidInput("invalid date or time format")
	}
	if !slot.After(time.Now().UTC()) {
		return apperrors.InvalidInput("preferred slot must be in the future")
	}
	return nil
}
