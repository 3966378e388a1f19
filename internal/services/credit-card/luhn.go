package creditcard

// Luhn reports whether digits passes the mod-10 check. Any non-digit
// character fails the check.
func Luhn(digits string) bool {
	if digits == "" {
		return false
	}

	var sum int
	shouldDouble := false

	// Iterate over the digits of the card number from right to left
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')

		if shouldDouble {
			digit = digit * 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		shouldDouble = !shouldDouble
	}

	return sum%10 == 0
}

// NumberState evaluates a digit-only card number against its brand. A number
// shorter than the brand's standard length stays Partial even when it happens
// to pass the checksum, so validity cannot flip while it is still being typed.
func NumberState(digits string, brand Brand) State {
	switch {
	case digits == "":
		return StateEmpty
	case brand.Equal(Invalid):
		return StateInvalid
	case !brand.Known():
		if CouldMatch(digits) {
			return StatePartial
		}
		return StateInvalid
	case len(digits) > brand.MaxLength():
		return StateInvalid
	case len(digits) < brand.StandardLength:
		return StatePartial
	case !brand.ValidLength(len(digits)):
		return StatePartial
	case Luhn(digits):
		return StateValid
	default:
		return StateInvalid
	}
}
