package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases, maps runs of non-alphanumerics to single hyphens and
// trims hyphens from both ends. Empty input yields an empty slug; callers
// validate before persisting.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
