package article

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, no leading/trailing hyphen.
// Slugs are derived once at creation and never re-derived on title edits, so
// article URLs stay stable.
func Slugify(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			hyphen = false
		default:
			if b.Len() > 0 && !hyphen {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SuffixSlug appends a short random suffix to a slug. Used to resolve slug
// collisions at creation without bouncing the request back to the client.
func SuffixSlug(slug string) string {
	return slug + "-" + uuid.NewString()[:8]
}
