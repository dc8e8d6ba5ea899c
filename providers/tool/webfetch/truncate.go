package webfetch

import "unicode/utf8"

// Truncate cuts text to at most maxChars runes and reports whether anything
// was removed. Applying it twice with the same limit is a no-op the second
// time.
func Truncate(text string, maxChars int) (string, bool) {
	if maxChars < 0 {
		maxChars = 0
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return text, false
	}

	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i], true
		}
		count++
	}
	return text, false
}
