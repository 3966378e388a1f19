package creditcard

// CreditCard is the card assembled from a form's fields. It is built on
// demand and never stored.
type CreditCard struct {
	Number       string     `json:"number"`
	Expiration   Expiration `json:"expiration"`
	SecurityCode string     `json:"security_code"`
	PostalCode   string     `json:"postal_code,omitempty"`
	Brand        Brand      `json:"-"`
}

// LastFour returns the last four digits of the number, or all of them when
// the number is shorter.
func (c CreditCard) LastFour() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}

// Masked hides all but the last four digits using the brand's grouping.
func (c CreditCard) Masked() string {
	masked := []byte(c.Number)
	for i := 0; i < len(masked)-4; i++ {
		masked[i] = '*'
	}
	return group(string(masked), c.Brand.GroupsFor(len(masked)))
}

// Check holds a one-shot evaluation of every card field.
type Check struct {
	Brand             Brand
	FormattedNumber   string
	Number            State
	Expiration        State
	SecurityCode      State
	PostalCode        State
	PostalCodeEnabled bool
}

// Valid combines the field states.
func (c Check) Valid() bool {
	return c.Number == StateValid &&
		c.Expiration == StateValid &&
		c.SecurityCode == StateValid &&
		(!c.PostalCodeEnabled || c.PostalCode == StateValid)
}
