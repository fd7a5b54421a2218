package domain

import "time"

// Artwork category constants.
const (
	CategoryOriginalPainting = "original_painting"
	CategoryPrint            = "print"
	CategoryDigitalArt       = "digital_art"
	CategorySketch           = "sketch"
	CategoryMixedMedia       = "mixed_media"
)

// Artwork medium constants.
const (
	MediumOil        = "oil"
	MediumAcrylic    = "acrylic"
	MediumWatercolor = "watercolor"
	MediumGouache    = "gouache"
	MediumInk        = "ink"
	MediumCharcoal   = "charcoal"
	MediumPastel     = "pastel"
	MediumDigital    = "digital"
	MediumMixed      = "mixed"
)

// Artwork style constants.
const (
	StyleAbstract      = "abstract"
	StyleRealism       = "realism"
	StyleImpressionism = "impressionism"
	StylePortrait      = "portrait"
	StyleLandscape     = "landscape"
	StyleStillLife     = "still_life"
	StyleSurrealism    = "surrealism"
	StyleMinimalist    = "minimalist"
)

// Artwork represents a piece in the gallery catalog. Price is in the smallest
// currency unit (cents).
type Artwork struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Medium      string    `json:"medium"`
	Style       string    `json:"style"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	ImageURL    string    `json:"image_url,omitempty"`
	Dimensions  string    `json:"dimensions,omitempty"`
	YearCreated *int      `json:"year_created,omitempty"`
	IsAvailable bool      `json:"is_available"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidCategories returns the set of valid artwork categories.
func ValidCategories() []string {
	return []string{
		CategoryOriginalPainting,
		CategoryPrint,
		CategoryDigitalArt,
		CategorySketch,
		CategoryMixedMedia,
	}
}

// ValidMediums returns the set of valid artwork mediums.
func ValidMediums() []string {
	return []string{
		MediumOil, MediumAcrylic, MediumWatercolor, MediumGouache,
		MediumInk, MediumCharcoal, MediumPastel, MediumDigital, MediumMixed,
	}
}

// ValidStyles returns the set of valid artwork styles.
func ValidStyles() []string {
	return []string{
		StyleAbstract, StyleRealism, StyleImpressionism, StylePortrait,
		StyleLandscape, StyleStillLife, StyleSurrealism, StyleMinimalist,
	}
}

// IsValidCategory checks whether the given string is a valid artwork category.
func IsValidCategory(c string) bool {
	return contains(ValidCategories(), c)
}

// IsValidMedium checks whether the given string is a valid artwork medium.
func IsValidMedium(m string) bool {
	return contains(ValidMediums(), m)
}

// IsValidStyle checks whether the given string is a valid artwork style.
func IsValidStyle(s string) bool {
	return contains(ValidStyles(), s)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
