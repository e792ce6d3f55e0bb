package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePhone strips spaces and dashes from a phone number. Validation
// stays minimal on purpose; the backend is the authority on numbers.
func NormalizePhone(s string) string {
	replacer := strings.NewReplacer(" ", "", "-", "")
	return replacer.Replace(strings.TrimSpace(s))
}

// FirstNonEmpty returns the first trimmed non-empty string, used when
// picking the most specific message out of nested provider payloads.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
