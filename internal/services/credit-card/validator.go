package creditcard

import "time"

// Input is a complete set of card fields as typed by a user.
type Input struct {
	CardNumber   string `json:"card_number"`
	Expiration   string `json:"expiration"`
	SecurityCode string `json:"security_code"`
	PostalCode   string `json:"postal_code"`
	IncludeZip   bool   `json:"include_zip"`
}

// Evaluate runs every field check over in at time now.
func Evaluate(in Input, now time.Time) Check {
	digits := Digits(in.CardNumber)
	brand := Classify(digits)

	_, expState := ParseExpiration(in.Expiration, now)
	check := Check{
		Brand:             brand,
		FormattedNumber:   FormatNumber(digits, brand),
		Number:            NumberState(digits, brand),
		Expiration:        expState,
		SecurityCode:      SecurityCodeState(Digits(in.SecurityCode), brand),
		PostalCodeEnabled: in.IncludeZip,
	}
	if in.IncludeZip {
		check.PostalCode = PostalCodeState(in.PostalCode)
	}
	return check
}
