package repository

import (
	"context"
	"time"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
)

// ArtworkFilter defines filter criteria for listing artwork.
type ArtworkFilter struct {
	Search      *string
	Category    *string
	Medium      *string
	Style       *string
	MinPrice    *int64
	MaxPrice    *int64
	IsAvailable *bool
	IsFeatured  *bool
	Page        int
	PerPage     int
}

// ArtworkRepository defines the interface for artwork persistence operations.
type ArtworkRepository interface {
	// Create inserts a new artwork into the store.
	Create(ctx context.Context, artwork *domain.Artwork) error

	// GetByID retrieves an artwork by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Artwork, error)

	// GetBySlug retrieves an artwork by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Artwork, error)

	// List returns artwork matching the given filter along with the total count.
	List(ctx context.Context, filter ArtworkFilter) ([]domain.Artwork, int, error)

	// Update modifies an existing artwork in the store.
	Update(ctx context.Context, artwork *domain.Artwork) error

	// Delete removes an artwork from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// CommissionRequestFilter defines filter criteria for listing commission requests.
type CommissionRequestFilter struct {
	Status    *string
	PackageID *string
	Email     *string
	Page      int
	PerPage   int
}

// CommissionPackageRepository defines persistence for commission packages.
type CommissionPackageRepository interface {
	// Create inserts a new commission package.
	Create(ctx context.Context, pkg *domain.CommissionPackage) error

	// GetByID retrieves a package by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.CommissionPackage, error)

	// List returns packages ordered by sort order. When activeOnly is true,
	// inactive packages are excluded.
	List(ctx context.Context, activeOnly bool) ([]domain.CommissionPackage, error)

	// Update modifies an existing package.
	Update(ctx context.Context, pkg *domain.CommissionPackage) error

	// Delete removes a package by its identifier.
	Delete(ctx context.Context, id string) error
}

// CommissionRequestRepository defines persistence for commission requests.
type CommissionRequestRepository interface {
	// Create inserts a new commission request.
	Create(ctx context.Context, req *domain.CommissionRequest) error

	// GetByID retrieves a request by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.CommissionRequest, error)

	// List returns requests matching the given filter along with the total count.
	List(ctx context.Context, filter CommissionRequestFilter) ([]domain.CommissionRequest, int, error)

	// Update modifies an existing request (status, quote, notes).
	Update(ctx context.Context, req *domain.CommissionRequest) error
}

// ConsultationFilter defines filter criteria for listing consultation bookings.
type ConsultationFilter struct {
	Status   *string
	Email    *string
	DateFrom *string
	DateTo   *string
	Page     int
	PerPage  int
}

// ConsultationRepository defines persistence for consultation bookings.
type ConsultationRepository interface {
	// Create inserts a new booking.
	Create(ctx context.Context, booking *domain.ConsultationBooking) error

	// GetByID retrieves a booking by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.ConsultationBooking, error)

	// List returns bookings matching the given filter along with the total count.
	List(ctx context.Context, filter ConsultationFilter) ([]domain.ConsultationBooking, int, error)

	// Update modifies an existing booking (status, schedule).
	Update(ctx context.Context, booking *domain.ConsultationBooking) error
}

// OrderFilter defines filter criteria for listing orders.
type OrderFilter struct {
	UserID        *string
	Status        *string
	PaymentStatus *string
	Email         *string
	Page          int
	PerPage       int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order and its items into the store atomically.
	// Either the order and every item are written, or nothing is.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier, including items.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the given filter along with the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, id string, status string) error

	// ConfirmPayment records the payment proof URL, marks the order paid and
	// moves it to processing in a single write, so a crash can never leave a
	// paid order stuck in pending.
	ConfirmPayment(ctx context.Context, id string, proofURL string) error
}

// CartRepository defines the interface for session cart persistence.
type CartRepository interface {
	// Get retrieves the cart for a session. A missing cart is returned as a
	// new empty cart, not an error.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save stores the cart and refreshes its TTL.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for a session.
	Delete(ctx context.Context, sessionID string) error
}

// WishlistRepository defines the interface for wishlist persistence operations.
type WishlistRepository interface {
	// Add inserts an artwork into the user's wishlist. It reports true when a
	// row was written and false when the pair was already present (no write).
	Add(ctx context.Context, userID, artworkID string) (bool, error)

	// Remove deletes an artwork from the user's wishlist.
	Remove(ctx context.Context, userID, artworkID string) error

	// List returns a paginated list of wishlist entries for the user,
	// newest first, and the total count.
	List(ctx context.Context, userID string, page, perPage int) ([]domain.WishlistEntry, int, error)

	// Exists checks whether an artwork is in the user's wishlist.
	Exists(ctx context.Context, userID, artworkID string) (bool, error)
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user.
	Update(ctx context.Context, user *domain.User) error
}

// RefreshTokenRepository defines persistence for refresh tokens.
type RefreshTokenRepository interface {
	// Create stores a new refresh token (hashed).
	Create(ctx context.Context, token *domain.RefreshToken) error

	// GetByHash retrieves a token by its hash.
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// Revoke marks a single token as revoked.
	Revoke(ctx context.Context, id string) error

	// RevokeByUserID revokes every active token for a user.
	RevokeByUserID(ctx context.Context, userID string) error
}

// UserTokenRepository defines persistence for single-use user tokens
// (password reset, email verification).
type UserTokenRepository interface {
	// Create stores a new token (hashed).
	Create(ctx context.Context, token *domain.UserToken) error

	// GetByHash retrieves a token by hash and purpose. Consumed and expired
	// tokens are not returned.
	GetByHash(ctx context.Context, tokenHash, purpose string) (*domain.UserToken, error)

	// Consume marks a token as used at the given time.
	Consume(ctx context.Context, id string, at time.Time) error
}

// EmailTemplateRepository defines persistence for email templates.
type EmailTemplateRepository interface {
	// GetByType retrieves the active template override for an email type.
	GetByType(ctx context.Context, emailType string) (*domain.EmailTemplate, error)

	// List returns all stored templates.
	List(ctx context.Context) ([]domain.EmailTemplate, error)

	// Upsert creates or replaces the template for an email type.
	Upsert(ctx context.Context, tmpl *domain.EmailTemplate) error

	// Delete removes the template override for an email type.
	Delete(ctx context.Context, emailType string) error
}

// EmailLogFilter defines filter criteria for listing email logs.
type EmailLogFilter struct {
	EmailType *string
	Status    *string
	Recipient *string
	Page      int
	PerPage   int
}

// EmailLogRepository defines persistence for email dispatch logs.
type EmailLogRepository interface {
	// Create records one dispatch attempt.
	Create(ctx context.Context, log *domain.EmailLog) error

	// List returns logs matching the given filter along with the total count.
	List(ctx context.Context, filter EmailLogFilter) ([]domain.EmailLog, int, error)
}

// MediaRepository defines persistence for uploaded media metadata.
type MediaRepository interface {
	// Create records an uploaded file.
	Create(ctx context.Context, file *domain.MediaFile) error

	// GetByID retrieves a file record by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.MediaFile, error)

	// Delete removes a file record by its identifier.
	Delete(ctx context.Context, id string) error
}
