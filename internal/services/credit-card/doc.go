/*
Package creditcard classifies, formats and validates card fields as they are
typed.

It covers four concerns:
- Brand classification from the digits typed so far (Classify, CouldMatch)
- The mod-10 checksum (Luhn, NumberState)
- Display formatting with reversible index mapping (FormatNumber, ApplyEdit)
- Expiry parsing with century inference (ParseExpiration)

Nothing in this package performs I/O. Malformed input is stripped or
truncated; validity is only ever reported through State values.

Usage:

	brand := creditcard.Classify("3782 8224 6310 005")
	display := creditcard.FormatNumber("378282246310005", brand) // "3782 822463 10005"
	state := creditcard.NumberState("378282246310005", brand)    // StateValid
*/
package creditcard
