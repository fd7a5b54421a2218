package domain

import "time"

// Commission request status constants.
const (
	CommissionStatusPending    = "pending"
	CommissionStatusReviewed   = "reviewed"
	CommissionStatusQuoted     = "quoted"
	CommissionStatusAccepted   = "accepted"
	CommissionStatusInProgress = "in_progress"
	CommissionStatusCompleted  = "completed"
	CommissionStatusRejected   = "rejected"
)

// CommissionPackage is a named commission offering with a base price.
// Inactive packages never appear in public listings.
type CommissionPackage struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	BasePrice      int64     `json:"base_price"`
	Currency       string    `json:"currency"`
	TurnaroundDays int       `json:"turnaround_days,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CommissionRequest is a customer-submitted request for commissioned work.
type CommissionRequest struct {
	ID            string    `json:"id"`
	PackageID     *string   `json:"package_id,omitempty"`
	UserID        *string   `json:"user_id,omitempty"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Description   string    `json:"description"`
	ReferenceURLs []string  `json:"reference_urls,omitempty"`
	Status        string    `json:"status"`
	QuoteAmount   *int64    `json:"quote_amount,omitempty"`
	AdminNotes    string    `json:"admin_notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidCommissionStatuses returns all valid commission request statuses.
func ValidCommissionStatuses() []string {
	return []string{
		CommissionStatusPending,
		CommissionStatusReviewed,
		CommissionStatusQuoted,
		CommissionStatusAccepted,
		CommissionStatusInProgress,
		CommissionStatusCompleted,
		CommissionStatusRejected,
	}
}

// IsValidCommissionStatus checks if a status string is valid.
func IsValidCommissionStatus(status string) bool {
	return contains(ValidCommissionStatuses(), status)
}

// CommissionTransitions defines which status transitions are valid.
// Rejection is allowed from any non-terminal state.
func CommissionTransitions() map[string][]string {
	return map[string][]string{
		CommissionStatusPending:    {CommissionStatusReviewed, CommissionStatusRejected},
		CommissionStatusReviewed:   {CommissionStatusQuoted, CommissionStatusRejected},
		CommissionStatusQuoted:     {CommissionStatusAccepted, CommissionStatusRejected},
		CommissionStatusAccepted:   {CommissionStatusInProgress, CommissionStatusRejected},
		CommissionStatusInProgress: {CommissionStatusCompleted, CommissionStatusRejected},
		CommissionStatusCompleted:  {},
		CommissionStatusRejected:   {},
	}
}

// CanTransitionTo checks if the request can transition to the target status.
func (r *CommissionRequest) CanTransitionTo(target string) bool {
	allowed, ok := CommissionTransitions()[r.Status]
	if !ok {
		return false
	}
	return contains(allowed, target)
}
