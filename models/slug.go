package models

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a title: lower-cased, runs of
// whitespace and punctuation collapsed into single hyphens, leading and
// trailing hyphens trimmed. "Hello, World!" becomes "hello-world".
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
