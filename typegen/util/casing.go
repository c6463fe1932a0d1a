package util

import (
	"strings"
	"unicode"
)

// ToPascalCase converts snake_case, kebab-case or mixed keys to PascalCase.
// Digits are kept in place and never force-capitalize the following letter,
// so "123test" stays "123test" and "user-name" becomes "UserName".
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var result strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		if unicode.IsLetter(runes[0]) {
			runes[0] = unicode.ToUpper(runes[0])
		}
		result.WriteString(string(runes))
	}

	return result.String()
}

// ToUpperSnakeCase converts an enum literal to an UPPER_SNAKE member name.
// Word boundaries come from separators and from lower-to-upper transitions:
// "in-progress" -> "IN_PROGRESS", "lowValue" -> "LOW_VALUE".
func ToUpperSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	prevBoundary := true
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if !prevBoundary {
				result.WriteRune('_')
				prevBoundary = true
			}
			continue
		}

		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			result.WriteRune('_')
		}

		result.WriteRune(unicode.ToUpper(r))
		prevBoundary = false
	}

	return strings.Trim(result.String(), "_")
}
