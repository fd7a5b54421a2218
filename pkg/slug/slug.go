package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given title.
//
// Examples:
//   - "Sunset Over the Bosphorus" → "sunset-over-the-bosphorus"
//   - "Portrait  Study #3!" → "portrait-study-3"
func Generate(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	// Replace any non-alphanumeric run with a single hyphen.
	s = slugRegexp.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
