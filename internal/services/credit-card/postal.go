package creditcard

import (
	"strings"
	"unicode"
)

const (
	MinPostalCodeLength = 3
	MaxPostalCodeLength = 10
)

// FormatPostalCode drops leading blanks and caps the code at its max length.
func FormatPostalCode(text string) string {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	if r := []rune(text); len(r) > MaxPostalCodeLength {
		text = string(r[:MaxPostalCodeLength])
	}
	return text
}

// PostalCodeState accepts letters, digits, spaces and hyphens.
func PostalCodeState(code string) State {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return StateEmpty
	}

	alnum := 0
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			alnum++
		case r == ' ' || r == '-':
		default:
			return StateInvalid
		}
	}

	n := len([]rune(trimmed))
	switch {
	case n < MinPostalCodeLength || alnum == 0:
		return StatePartial
	case n > MaxPostalCodeLength:
		return StateInvalid
	default:
		return StateValid
	}
}
