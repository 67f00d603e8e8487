package validators

import (
	"strings"
	"unicode"
)

// SanitizeString trims input, drops control characters, folds runs of
// whitespace into one space and cuts to maxLen runes.
func SanitizeString(input string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(input))
	space := false
	n := 0
	for _, r := range strings.TrimSpace(input) {
		if maxLen > 0 && n >= maxLen {
			break
		}
		switch {
		case unicode.IsSpace(r):
			if space {
				continue
			}
			space = true
			r = ' '
		case unicode.IsControl(r):
			continue
		default:
			space = false
		}
		b.WriteRune(r)
		n++
	}
	return strings.TrimSpace(b.String())
}
