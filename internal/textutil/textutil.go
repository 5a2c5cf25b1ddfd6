package textutil

import "strings"

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// simplify lowercases and turns hyphens into spaces so "Rhombus-Square" and
// "rhombus square" compare equal.
func simplify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "-", " ")
}

// LaxContains reports whether needle loosely appears in haystack: either as a
// substring, or word by word, once both are simplified.
func LaxContains(needle, haystack string) bool {
	needle = simplify(needle)
	haystack = simplify(haystack)
	if strings.Contains(haystack, needle) {
		return true
	}
	for _, word := range strings.Fields(needle) {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}
