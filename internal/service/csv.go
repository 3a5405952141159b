package service

import (
	"regexp"
	"strings"
)

// emailRegex is deliberately loose: something@something.tld. Real validation
// happens when the relay tries to deliver.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigits = regexp.MustCompile(`\D`)

// splitCSVLine splits one CSV line on unquoted commas. Quoted fields may
// contain delimiters; quote characters themselves are stripped from the
// result and fields are trimmed.
func splitCSVLine(line string) []string {
	values := []string{}
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

// isValidEmail reports whether s looks like an email address
func isValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// normalizePhone strips every non-digit character
func normalizePhone(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}
