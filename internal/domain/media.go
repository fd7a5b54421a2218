package domain

import "time"

// AllowedContentTypes lists the content types accepted for media uploads.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MaxFileSize is the maximum allowed upload size in bytes (10 MB).
const MaxFileSize int64 = 10 * 1024 * 1024

// Media kind constants classify what an uploaded file is for.
const (
	MediaKindArtwork             = "artwork"
	MediaKindCommissionReference = "commission_reference"
	MediaKindPaymentProof        = "payment_proof"
)

// MediaFile represents an uploaded image.
type MediaFile struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	UploadedBy   *string   `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAllowedContentType checks whether the given content type is accepted.
func IsAllowedContentType(contentType string) bool {
	return AllowedContentTypes[contentType]
}

// ValidMediaKinds returns the set of valid media kinds.
func ValidMediaKinds() []string {
	return []string{MediaKindArtwork, MediaKindCommissionReference, MediaKindPaymentProof}
}

// IsValidMediaKind checks whether the given kind is valid.
func IsValidMediaKind(kind string) bool {
	return contains(ValidMediaKinds(), kind)
}
