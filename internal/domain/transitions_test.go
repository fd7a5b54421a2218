package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		wantOK bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to shipped skips processing", OrderStatusPending, OrderStatusShipped, false},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusProcessing, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
		{"unknown status", "teleported", OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.from}
			assert.Equal(t, tt.wantOK, o.CanTransitionTo(tt.to))
		})
	}
}

func TestCommissionCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		wantOK bool
	}{
		{"pending to reviewed", CommissionStatusPending, CommissionStatusReviewed, true},
		{"pending straight to quoted", CommissionStatusPending, CommissionStatusQuoted, false},
		{"reviewed to quoted", CommissionStatusReviewed, CommissionStatusQuoted, true},
		{"quoted to accepted", CommissionStatusQuoted, CommissionStatusAccepted, true},
		{"accepted to in_progress", CommissionStatusAccepted, CommissionStatusInProgress, true},
		{"in_progress to completed", CommissionStatusInProgress, CommissionStatusCompleted, true},
		{"rejection from any non-terminal state", CommissionStatusInProgress, CommissionStatusRejected, true},
		{"completed is terminal", CommissionStatusCompleted, CommissionStatusRejected, false},
		{"rejected is terminal", CommissionStatusRejected, CommissionStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &CommissionRequest{Status: tt.from}
			assert.Equal(t, tt.wantOK, r.CanTransitionTo(tt.to))
		})
	}
}

func TestConsultationCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		wantOK bool
	}{
		{"pending to confirmed", ConsultationStatusPending, ConsultationStatusConfirmed, true},
		{"pending to cancelled", ConsultationStatusPending, ConsultationStatusCancelled, true},
		{"pending straight to completed", ConsultationStatusPending, ConsultationStatusCompleted, false},
		{"confirmed to completed", ConsultationStatusConfirmed, ConsultationStatusCompleted, true},
		{"completed is terminal", ConsultationStatusCompleted, ConsultationStatusConfirmed, false},
		{"cancelled is terminal", ConsultationStatusCancelled, ConsultationStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &ConsultationBooking{Status: tt.from}
			assert.Equal(t, tt.wantOK, b.CanTransitionTo(tt.to))
		})
	}
}

func TestCartTotals(t *testing.T) {
	cart := NewCart("sess-1")
	assert.Equal(t, int64(0), cart.TotalAmount())
	assert.Equal(t, 0, cart.ItemCount())

	cart.Lines = []CartLine{
		{ArtworkID: "a", Price: 25000, Quantity: 2},
		{ArtworkID: "b", Price: 12000, Quantity: 1},
	}
	assert.Equal(t, int64(62000), cart.TotalAmount())
	assert.Equal(t, 3, cart.ItemCount())

	assert.Equal(t, 1, cart.FindLineIndex("b"))
	assert.Equal(t, -1, cart.FindLineIndex("missing"))
}
