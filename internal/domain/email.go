package domain

import "time"

// Email type constants name the fixed set of dispatchable templates.
const (
	EmailTypeWelcome                = "welcome"
	EmailTypeOrderStatus            = "order_status"
	EmailTypeOrderConfirmation      = "order_confirmation"
	EmailTypeCommissionStatus       = "commission_status"
	EmailTypeCommissionQuote        = "commission_quote"
	EmailTypeConsultationConfirmed  = "consultation_confirmed"
	EmailTypeConsultationReschedule = "consultation_reschedule"
	EmailTypePasswordReset          = "password_reset"
	EmailTypeEmailVerify            = "email_verify"
	EmailTypeContactReply           = "contact_reply"
)

// Email log status constants.
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailTemplate is an admin-editable subject/body template that overrides
// the built-in default for its email type. Bodies use Go text/template
// syntax over the dispatch data map.
type EmailTemplate struct {
	ID        string    `json:"id"`
	EmailType string    `json:"email_type"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailLog records a single dispatch attempt, successful or not.
type EmailLog struct {
	ID        string    `json:"id"`
	EmailType string    `json:"email_type"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidEmailTypes returns the fixed set of dispatchable email types.
func ValidEmailTypes() []string {
	return []string{
		EmailTypeWelcome,
		EmailTypeOrderStatus,
		EmailTypeOrderConfirmation,
		EmailTypeCommissionStatus,
		EmailTypeCommissionQuote,
		EmailTypeConsultationConfirmed,
		EmailTypeConsultationReschedule,
		EmailTypePasswordReset,
		EmailTypeEmailVerify,
		EmailTypeContactReply,
	}
}

// IsValidEmailType checks whether the given string names a known template.
func IsValidEmailType(t string) bool {
	return contains(ValidEmailTypes(), t)
}
