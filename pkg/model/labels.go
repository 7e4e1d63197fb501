package model

import (
	"regexp"
	"strings"
)

var wordSeparators = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler turns a field name into a human-friendly label, splitting on
// underscores, dashes, and camelCase boundaries: "firstName" and "first_name"
// both become "First Name".
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range wordSeparators.Split(name, -1) {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			lower := strings.ToLower(part)
			segments = append(segments, strings.ToUpper(lower[:1])+lower[1:])
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isCamelBoundary(rune(input[i-1]), r) {
			out.WriteByte(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isCamelBoundary(prev, curr rune) bool {
	isUpper := func(r rune) bool { return r >= 'A' && r <= 'Z' }
	isLower := func(r rune) bool { return r >= 'a' && r <= 'z' }
	isDigit := func(r rune) bool { return r >= '0' && r <= '9' }
	isLetter := func(r rune) bool { return isUpper(r) || isLower(r) }

	return (isLower(prev) && isUpper(curr)) ||
		(isLetter(prev) && isDigit(curr)) ||
		(isDigit(prev) && isLetter(curr))
}
