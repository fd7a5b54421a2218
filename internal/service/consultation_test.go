package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

func newConsultationServiceFixture() (*ConsultationService, *mockConsultationRepo) {
	bookings := new(mockConsultationRepo)
	svc := NewConsultationService(bookings, newTestEventProducer(), newTestLogger())
	return svc, bookings
}

func futureSlot() (string, string) {
	slot := time.Now().UTC().Add(72 * time.Hour)
	return slot.Format("2006-01-02"), slot.Format("15:04")
}

func bookingInput() CreateBookingInput {
	date, timeOfDay := futureSlot()
	return CreateBookingInput{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		PreferredDate: date,
		PreferredTime: timeOfDay,
		Topic:         "Commission sizing and framing",
	}
}

func TestConsultationService_CreateBooking_Success(t *testing.T) {
	svc, bookings := newConsultationServiceFixture()
	ctx := context.Background()

	bookings.On("Create", ctx, mock.AnythingOfType("*domain.ConsultationBooking")).Return(nil)

	booking, err := svc.CreateBooking(ctx, bookingInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultationStatusPending, booking.Status)
	assert.NotEmpty(t, booking.ID)
	bookings.AssertExpectations(t)
}

func TestConsultationService_CreateBooking_PastSlot(t *testing.T) {
	svc, _ := newConsultationServiceFixture()

	input := bookingInput()
	input.PreferredDate = "2020-01-15"
	input.PreferredTime = "10:00"

	_, err := svc.CreateBooking(context.Background(), input, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestConsultationService_CreateBooking_BadDateFormat(t *testing.T) {
	svc, _ := newConsultationServiceFixture()

	input := bookingInput()
	input.PreferredDate = "15/01/2030"

	_, err := svc.CreateBooking(context.Background(), input, nil)
	require.Error(t, err)

	var vErr *validator.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestConsultationService_UpdateStatus_Confirm(t *testing.T) {
	svc, bookings := newConsultationServiceFixture()
	ctx := context.Background()

	pending := &domain.ConsultationBooking{ID: "book-1", Status: domain.ConsultationStatusPending}
	bookings.On("GetByID", ctx, "book-1").Return(pending, nil)
	bookings.On("Update", ctx, mock.AnythingOfType("*domain.ConsultationBooking")).Return(nil)

	booking, err := svc.UpdateStatus(ctx, "book-1", UpdateBookingStatusInput{Status: domain.ConsultationStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultationStatusConfirmed, booking.Status)
}

func TestConsultationService_UpdateStatus_InvalidTransition(t *testing.T) {
	svc, bookings := newConsultationServiceFixture()
	ctx := context.Background()

	cancelled := &domain.ConsultationBooking{ID: "book-1", Status: domain.ConsultationStatusCancelled}
	bookings.On("GetByID", ctx, "book-1").Return(cancelled, nil)

	_, err := svc.UpdateStatus(ctx, "book-1", UpdateBookingStatusInput{Status: domain.ConsultationStatusConfirmed})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestConsultationService_Reschedule_Success(t *testing.T) {
	svc, bookings := newConsultationServiceFixture()
	ctx := context.Background()

	confirmed := &domain.ConsultationBooking{
		ID:            "book-1",
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		PreferredDate: "2030-01-15",
		PreferredTime: "10:00",
		Status:        domain.ConsultationStatusConfirmed,
	}
	bookings.On("GetByID", ctx, "book-1").Return(confirmed, nil)
	bookings.On("Update", ctx, mock.AnythingOfType("*domain.ConsultationBooking")).Return(nil)

	date, timeOfDay := futureSlot()
	booking, err := svc.Reschedule(ctx, "book-1", RescheduleBookingInput{
		PreferredDate: date,
		PreferredTime: timeOfDay,
	})
	require.NoError(t, err)
	assert.Equal(t, date, booking.PreferredDate)
	assert.Equal(t, timeOfDay, booking.PreferredTime)
}

func TestConsultationService_Reschedule_TerminalBooking(t *testing.T) {
	svc, bookings := newConsultationServiceFixture()
	ctx := context.Background()

	completed := &domain.ConsultationBooking{ID: "book-1", Status: domain.ConsultationStatusCompleted}
	bookings.On("GetByID", ctx, "book-1").Return(completed, nil)

	date, timeOfDay := futureSlot()
	_, err := svc.Reschedule(ctx, "book-1", RescheduleBookingInput{
		PreferredDate: date,
		PreferredTime: timeOfDay,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
