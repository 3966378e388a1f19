package creditcard

import (
	"fmt"
	"strconv"
	"time"
)

// Expiration is a card expiry month with a four-digit year.
type Expiration struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (e Expiration) String() string {
	return fmt.Sprintf("%02d/%02d", e.Month, e.Year%100)
}

// ValidAt reports whether the card is still usable during now's month.
func (e Expiration) ValidAt(now time.Time) bool {
	if e.Month < 1 || e.Month > 12 {
		return false
	}

	currentYear, currentMonth, _ := now.Date()
	if e.Year < currentYear || (e.Year == currentYear && e.Month < int(currentMonth)) {
		return false
	}

	return true
}

// NormalizeYear expands a two-digit year into the century of now.
func NormalizeYear(year int, now time.Time) int {
	if year >= 100 {
		return year
	}
	return now.Year()/100*100 + year
}

// ParseExpiration reads MM/YY or MM/YYYY text (separator optional) and
// evaluates it against now. An out-of-range month is Invalid as soon as both
// month digits are present.
func ParseExpiration(text string, now time.Time) (Expiration, State) {
	digits := expirationDigits(text)
	if digits == "" {
		return Expiration{}, StateEmpty
	}
	if len(digits) < 2 {
		return Expiration{}, StatePartial
	}

	month, _ := strconv.Atoi(digits[:2])
	exp := Expiration{Month: month}
	if month < 1 || month > 12 {
		return exp, StateInvalid
	}

	yearDigits := digits[2:]
	if len(yearDigits) != 2 && len(yearDigits) != 4 {
		return exp, StatePartial
	}

	year, _ := strconv.Atoi(yearDigits)
	if len(yearDigits) == 2 {
		year = NormalizeYear(year, now)
	}
	exp.Year = year

	if !exp.ValidAt(now) {
		return exp, StateInvalid
	}
	return exp, StateValid
}

// ExpirationComplete reports whether text holds a full MM/YY entry.
func ExpirationComplete(text string) bool {
	return len(expirationDigits(text)) == 4
}
