package entry

import (
	"fmt"

	creditcard "ccentry/internal/services/credit-card"
)

// HelperText returns the hint for the focused field, or an error hint when
// that field is invalid. It is empty when the helper is disabled.
func (f *Form) HelperText() string {
	if !f.config.IncludeHelper {
		return ""
	}

	invalid := f.State(f.focus) == creditcard.StateInvalid
	switch f.focus {
	case FieldNumber:
		if invalid {
			return "Invalid card number"
		}
		return "Enter your credit card number"
	case FieldExpiration:
		if invalid {
			return "Invalid expiration date"
		}
		return "Enter the expiration date (MM/YY)"
	case FieldSecurityCode:
		if invalid {
			return "Invalid security code"
		}
		if f.brand.SecurityCodeOnFront {
			return fmt.Sprintf("Enter the %d-digit code on the front of your card", f.brand.SecurityCodeLength)
		}
		return fmt.Sprintf("Enter the %d-digit security code on the back of your card", f.brand.SecurityCodeLength)
	case FieldPostalCode:
		if invalid {
			return "Invalid postal code"
		}
		return "Enter the billing postal code"
	}
	return ""
}

// CardImage names the artwork the host should show: the brand's back image
// while the security code is focused, its front image otherwise.
func (f *Form) CardImage() string {
	if f.focus == FieldSecurityCode {
		return f.brand.BackImage
	}
	return f.brand.FrontImage
}
