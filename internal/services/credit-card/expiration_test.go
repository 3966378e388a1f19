package creditcard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExpiration(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		text  string
		want  State
		month int
		year  int
	}{
		{name: "empty", text: "", want: StateEmpty},
		{name: "one digit", text: "1", want: StatePartial},
		{name: "padded month only", text: "4", want: StatePartial, month: 4},
		{name: "month only", text: "12", want: StatePartial, month: 12},
		{name: "month zero", text: "00", want: StateInvalid},
		{name: "month thirteen", text: "13", want: StateInvalid, month: 13},
		{name: "month thirteen with valid year", text: "13/30", want: StateInvalid, month: 13},
		{name: "one year digit", text: "12/3", want: StatePartial, month: 12},
		{name: "three year digits", text: "12/203", want: StatePartial, month: 12},
		{name: "expired long ago", text: "01/20", want: StateInvalid, month: 1, year: 2020},
		{name: "far future two digit", text: "12/99", want: StateValid, month: 12, year: 2099},
		{name: "current month", text: "10/26", want: StateValid, month: 10, year: 2026},
		{name: "previous month", text: "09/26", want: StateInvalid, month: 9, year: 2026},
		{name: "four digit year", text: "12/2099", want: StateValid, month: 12, year: 2099},
		{name: "no separator", text: "0530", want: StateValid, month: 5, year: 2030},
		{name: "typed short month", text: "1/30", want: StateValid, month: 1, year: 2030},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, state := ParseExpiration(tt.text, now)
			assert.Equal(t, tt.want, state)
			assert.Equal(t, tt.month, exp.Month)
			assert.Equal(t, tt.year, exp.Year)
		})
	}
}

func TestParseExpiration_RelativeToClock(t *testing.T) {
	jan2020 := time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC)
	feb2020 := time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC)

	_, state := ParseExpiration("01/20", jan2020)
	assert.Equal(t, StateValid, state)

	_, state = ParseExpiration("01/20", feb2020)
	assert.Equal(t, StateInvalid, state)

	_, state = ParseExpiration("12/99", feb2020)
	assert.Equal(t, StateValid, state)
}

func TestNormalizeYear(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2099, NormalizeYear(99, now))
	assert.Equal(t, 2005, NormalizeYear(5, now))
	assert.Equal(t, 2031, NormalizeYear(2031, now))
}

func TestExpiration_String(t *testing.T) {
	assert.Equal(t, "03/29", Expiration{Month: 3, Year: 2029}.String())
	assert.True(t, ExpirationComplete("03/29"))
	assert.False(t, ExpirationComplete("03/2"))
	assert.False(t, ExpirationComplete("03/2029"))
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

	check := Evaluate(Input{
		CardNumber:   "3782 822463 10005",
		Expiration:   "12/30",
		SecurityCode: "1234",
		IncludeZip:   false,
	}, now)
	assert.Equal(t, Amex.Code, check.Brand.Code)
	assert.Equal(t, "3782 822463 10005", check.FormattedNumber)
	assert.True(t, check.Valid())

	check = Evaluate(Input{
		CardNumber:   "4111111111111111",
		Expiration:   "12/30",
		SecurityCode: "123",
		IncludeZip:   true,
	}, now)
	assert.Equal(t, StateEmpty, check.PostalCode)
	assert.False(t, check.Valid())

	check.PostalCodeEnabled = false
	assert.True(t, check.Valid(), "disabled postal code must not affect validity")
}
