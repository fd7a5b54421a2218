package domain

import "time"

// Consultation booking status constants.
const (
	ConsultationStatusPending   = "pending"
	ConsultationStatusConfirmed = "confirmed"
	ConsultationStatusCompleted = "completed"
	ConsultationStatusCancelled = "cancelled"
)

// ConsultationBooking is a request for a consultation call with the artist.
type ConsultationBooking struct {
	ID            string    `json:"id"`
	UserID        *string   `json:"user_id,omitempty"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	PreferredDate string    `json:"preferred_date"` // YYYY-MM-DD
	PreferredTime string    `json:"preferred_time"` // HH:MM, 24h
	Topic         string    `json:"topic"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidConsultationStatuses returns all valid booking statuses.
func ValidConsultationStatuses() []string {
	return []string{
		ConsultationStatusPending,
		ConsultationStatusConfirmed,
		ConsultationStatusCompleted,
		ConsultationStatusCancelled,
	}
}

// IsValidConsultationStatus checks if a status string is valid.
func IsValidConsultationStatus(status string) bool {
	return contains(ValidConsultationStatuses(), status)
}

// ConsultationTransitions defines which status transitions are valid.
func ConsultationTransitions() map[string][]string {
	return map[string][]string{
		ConsultationStatusPending:   {ConsultationStatusConfirmed, ConsultationStatusCancelled},
		ConsultationStatusConfirmed: {ConsultationStatusCompleted, ConsultationStatusCancelled},
		ConsultationStatusCompleted: {},
		ConsultationStatusCancelled: {},
	}
}

// CanTransitionTo checks if the booking can transition to the target status.
func (b *ConsultationBooking) CanTransitionTo(target string) bool {
	allowed, ok := ConsultationTransitions()[b.Status]
	if !ok {
		return false
	}
	return contains(allowed, target)
}
