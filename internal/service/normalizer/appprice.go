package normalizer

import "strings"

// IsAppPrice reports whether the offer price requires redemption through
// the store's loyalty app.
func IsAppPrice(heading, description string) bool {
	text := strings.ToLower(heading + " " + description)
	return strings.Contains(text, "app-pris") || strings.Contains(text, "app pris")
}
