package classify

import (
	"strings"
	"unicode"
)

// normalizeKey reduces a line to a lower-case, alphanumeric-and-space key
// so OCR punctuation noise does not defeat substring comparisons.
func normalizeKey(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// mutualSubstring reports whether either normalized string contains the
// other. This is the containment test weak fuzzy matches must additionally
// pass.
func mutualSubstring(a, b string) bool {
	na, nb := normalizeKey(a), normalizeKey(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// digitCount returns the number of ASCII digits in the token.
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
