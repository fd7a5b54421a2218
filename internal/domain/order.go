package domain

import "time"

// Order status constants.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status constants. Payment is confirmed manually from an uploaded
// proof screenshot; there is no gateway integration.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Order represents a customer order. An order and its items are always
// written together in one transaction.
type Order struct {
	ID              string      `json:"id"`
	UserID          *string     `json:"user_id,omitempty"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone,omitempty"`
	ShippingAddress Address     `json:"shipping_address"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"payment_status"`
	PaymentProofURL string      `json:"payment_proof_url,omitempty"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"total_amount"`
	Currency        string      `json:"currency"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is one artwork line within an order, priced at order time.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ArtworkID string `json:"artwork_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Address represents a shipping address.
type Address struct {
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
}

// ValidOrderStatuses returns all valid order statuses.
func ValidOrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// IsValidOrderStatus checks if a status string is valid.
func IsValidOrderStatus(status string) bool {
	return contains(ValidOrderStatuses(), status)
}

// OrderTransitions defines which status transitions are valid. An order
// moves from pending to processing when payment is confirmed.
func OrderTransitions() map[string][]string {
	return map[string][]string{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {},
		OrderStatusCancelled:  {},
	}
}

// CanTransitionTo checks if the order can transition to the target status.
func (o *Order) CanTransitionTo(target string) bool {
	allowed, ok := OrderTransitions()[o.Status]
	if !ok {
		return false
	}
	return contains(allowed, target)
}
