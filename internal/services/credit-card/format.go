package creditcard

import "strings"

const (
	// NumberSeparator is placed between digit groups of a card number.
	NumberSeparator = ' '
	// ExpirationSeparator splits month and year.
	ExpirationSeparator = '/'

	MaxSecurityCodeLength = 4
	maxExpirationDigits   = 6
)

// Digits strips every non-digit character from text.
func Digits(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FormatNumber renders the digits of number grouped for brand. Digits past the
// brand's maximum length are dropped.
func FormatNumber(number string, brand Brand) string {
	digits := Digits(number)
	if limit := brand.MaxLength(); len(digits) > limit {
		digits = digits[:limit]
	}

	return group(digits, brand.GroupsFor(len(digits)))
}

// group joins s with NumberSeparator at the given group boundaries.
func group(s string, groups []int) string {
	var b strings.Builder
	b.Grow(len(s) + len(groups))
	pos := 0
	for i, g := range groups {
		if pos >= len(s) {
			break
		}
		if i > 0 {
			b.WriteByte(NumberSeparator)
		}
		end := pos + g
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[pos:end])
		pos = end
	}
	return b.String()
}

// DisplayIndex maps a digit index onto its position in the grouped display.
func DisplayIndex(digitIndex int, groups []int) int {
	seps, total := 0, 0
	for i, g := range groups {
		total += g
		if digitIndex < total || i == len(groups)-1 {
			break
		}
		seps++
	}
	return digitIndex + seps
}

// DigitIndex maps a display position back onto the number of digits before it.
func DigitIndex(displayIndex int, groups []int) int {
	digits, pos := 0, 0
	for i, g := range groups {
		if displayIndex <= pos+g {
			if displayIndex < pos {
				return digits
			}
			return digits + displayIndex - pos
		}
		digits += g
		pos += g
		if i < len(groups)-1 {
			pos++
		}
	}
	return digits
}

// ApplyEdit turns the host's new raw text into the digits the field should
// hold. When the edit removed only a separator, the digit in front of that
// separator is removed instead, so deleting never stalls on a separator.
func ApplyEdit(prevDisplay, newText string) string {
	prev := Digits(prevDisplay)
	next := Digits(newText)
	if next != prev || len(newText) >= len(prevDisplay) {
		return next
	}

	i := 0
	for i < len(newText) && newText[i] == prevDisplay[i] {
		i++
	}
	before := len(Digits(prevDisplay[:i]))
	if before == 0 {
		return next
	}
	return prev[:before-1] + prev[before:]
}

// FormatExpiration renders text as MM/YY or MM/YYYY. A lone month digit above
// one is zero padded, as is a one-digit month followed by a typed separator.
func FormatExpiration(text string) string {
	digits := expirationDigits(text)
	switch {
	case digits == "":
		return ""
	case len(digits) <= 2:
		return digits
	default:
		return digits[:2] + string(ExpirationSeparator) + digits[2:]
	}
}

func expirationDigits(text string) string {
	var digits string
	if idx := strings.IndexByte(text, ExpirationSeparator); idx >= 0 {
		month := Digits(text[:idx])
		if len(month) == 1 {
			month = "0" + month
		}
		digits = month + Digits(text[idx+1:])
	} else {
		digits = Digits(text)
	}

	if len(digits) == 1 && digits[0] > '1' {
		digits = "0" + digits
	}
	if len(digits) > maxExpirationDigits {
		digits = digits[:maxExpirationDigits]
	}
	return digits
}

// FormatSecurityCode keeps at most MaxSecurityCodeLength digits.
func FormatSecurityCode(text string) string {
	digits := Digits(text)
	if len(digits) > MaxSecurityCodeLength {
		digits = digits[:MaxSecurityCodeLength]
	}
	return digits
}

// SecurityCodeState evaluates a security code against the brand's length.
func SecurityCodeState(code string, brand Brand) State {
	switch n := len(code); {
	case n == 0:
		return StateEmpty
	case n < brand.SecurityCodeLength:
		return StatePartial
	case n == brand.SecurityCodeLength:
		return StateValid
	default:
		return StateInvalid
	}
}
