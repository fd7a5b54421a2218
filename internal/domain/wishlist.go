package domain

import "time"

// WishlistEntry represents an artwork saved in a user's wishlist.
// Entries are unique per (user, artwork) and carry no quantity.
type WishlistEntry struct {
	UserID    string    `json:"user_id"`
	ArtworkID string    `json:"artwork_id"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized artwork fields for list views, populated on read.
	Title    string `json:"title,omitempty"`
	Price    *int64 `json:"price,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Category string `json:"category,omitempty"`
}
