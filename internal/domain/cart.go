package domain

import "time"

// CartLine is one artwork in a cart. No two lines in a cart share an
// artwork ID; quantity is always at least 1 (a line at 0 is removed, not kept).
type CartLine struct {
	ArtworkID string `json:"artwork_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
}

// Cart is a session-scoped shopping cart. It lives in Redis under the
// session ID and expires with it; it is never tied to a user record.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Lines:     []CartLine{},
		UpdatedAt: time.Now().UTC(),
	}
}

// TotalAmount computes the cart total as the sum of price times quantity.
// It is recomputed on every call, never cached.
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Touch bumps the modification timestamp.
func (c *Cart) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

// FindLineIndex returns the index of the line holding the given artwork ID,
// or -1 if the cart has no such line.
func (c *Cart) FindLineIndex(artworkID string) int {
	for i, line := range c.Lines {
		if line.ArtworkID == artworkID {
			return i
		}
	}
	return -1
}
