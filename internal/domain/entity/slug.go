package entity

import (
	"regexp"
	"strings"
)

// slugPattern is the character set a slug must match: letters, digits,
// dashes and underscores, nothing else.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidSlug reports whether s contains only slug-safe characters.
// An empty string is not a valid slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify derives a URL-safe slug from a title.
// The result is lowercase with runs of non-alphanumeric characters
// collapsed to a single dash and leading/trailing dashes trimmed.
//
// Slugify("Title for article") == "title-for-article"
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	// Only ASCII letters and digits survive; everything else separates words.
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	return b.String()
}
