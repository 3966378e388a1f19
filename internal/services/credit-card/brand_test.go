package creditcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v72"
)

var testCards = []struct {
	number string
	brand  Brand
}{
	{"4111111111111111", Visa},
	{"4242424242424242", Visa},
	{"4222222222222", Visa},
	{"5555555555554444", MasterCard},
	{"2223003122003222", MasterCard},
	{"378282246310005", Amex},
	{"371449635398431", Amex},
	{"6011111111111117", Discover},
	{"6011000990139424", Discover},
	{"30569309025904", DinersClub},
	{"38520000023237", DinersClub},
	{"36227206271667", DinersClub},
	{"3566002020360505", JCB},
	{"3530111333300000", JCB},
}

func TestClassify_TestCards(t *testing.T) {
	for _, tc := range testCards {
		t.Run(tc.number, func(t *testing.T) {
			brand := Classify(tc.number)
			assert.Equal(t, tc.brand.Code, brand.Code)
			assert.True(t, Luhn(tc.number))
			assert.Equal(t, StateValid, NumberState(tc.number, brand))
		})
	}
}

func TestClassify_Prefixes(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   Brand
	}{
		{name: "empty", digits: "", want: Unknown},
		{name: "single four is visa", digits: "4", want: Visa},
		{name: "three alone is ambiguous", digits: "3", want: Unknown},
		{name: "amex 34", digits: "34", want: Amex},
		{name: "amex 37", digits: "37", want: Amex},
		{name: "jcb needs four digits", digits: "352", want: Unknown},
		{name: "jcb 3528", digits: "3528", want: JCB},
		{name: "jcb upper bound", digits: "3589", want: JCB},
		{name: "diners 36", digits: "36", want: DinersClub},
		{name: "diners 3095", digits: "3095", want: DinersClub},
		{name: "diners 300", digits: "300", want: DinersClub},
		{name: "mastercard 51", digits: "51", want: MasterCard},
		{name: "mastercard 2-series", digits: "2221", want: MasterCard},
		{name: "mastercard 2-series upper", digits: "2720", want: MasterCard},
		{name: "2721 is not mastercard", digits: "2721", want: Unknown},
		{name: "discover 6011", digits: "6011", want: Discover},
		{name: "discover 65", digits: "65", want: Discover},
		{name: "discover 644", digits: "644", want: Discover},
		{name: "discover 622126", digits: "622126", want: Discover},
		{name: "separators ignored", digits: "3782 8224", want: Amex},
		{name: "too long for any brand", digits: "41111111111111111111", want: Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.Code, Classify(tt.digits).Code)
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, tc := range testCards {
		for i := 0; i <= len(tc.number); i++ {
			assert.Equal(t, Classify(tc.number[:i]).Code, Classify(tc.number[:i]).Code)
		}
	}
}

func TestClassify_BrandChangesMidEntry(t *testing.T) {
	assert.Equal(t, Unknown.Code, Classify("3").Code)
	assert.Equal(t, Amex.Code, Classify("37").Code)
	assert.Equal(t, Unknown.Code, Classify("3").Code)
	assert.Equal(t, DinersClub.Code, Classify("38").Code)
}

func TestCouldMatch(t *testing.T) {
	tests := []struct {
		digits string
		want   bool
	}{
		{"", true},
		{"1", false},
		{"2", true},
		{"22", true},
		{"28", false},
		{"3", true},
		{"35", true},
		{"351", false},
		{"6", true},
		{"62", true},
		{"621", false},
		{"9", false},
		{"41111111111111111111", false},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			assert.Equal(t, tt.want, CouldMatch(tt.digits))
		})
	}
}

func TestBrand_Lengths(t *testing.T) {
	assert.Equal(t, 19, Visa.MaxLength())
	assert.True(t, Visa.ValidLength(16))
	assert.False(t, Visa.ValidLength(15))
	assert.False(t, Visa.ValidLength(13))
	assert.False(t, Unknown.ValidLength(16))
	assert.True(t, Amex.CompleteLength(15))
	assert.True(t, Visa.CompleteLength(16))
	assert.True(t, Visa.CompleteLength(19))
	assert.False(t, Visa.CompleteLength(13))
	assert.False(t, Unknown.CompleteLength(19))
}

func TestBrand_GroupsFor(t *testing.T) {
	assert.Equal(t, []int{4, 6, 5}, Amex.GroupsFor(15))
	assert.Equal(t, []int{4, 6, 4}, DinersClub.GroupsFor(14))
	assert.Equal(t, []int{4, 4, 4, 4}, DinersClub.GroupsFor(16))
	assert.Equal(t, []int{4, 4, 4, 4, 3}, Visa.GroupsFor(19))
	assert.Equal(t, []int{4, 4, 4, 4}, Visa.GroupsFor(5))
}

func TestBrand_StripeBrand(t *testing.T) {
	assert.Equal(t, stripe.CardBrandVisa, Visa.StripeBrand())
	assert.Equal(t, stripe.CardBrandAmex, Amex.StripeBrand())
	assert.Equal(t, stripe.CardBrandMasterCard, MasterCard.StripeBrand())
	assert.Equal(t, stripe.CardBrandUnknown, Invalid.StripeBrand())
}

func TestLookup(t *testing.T) {
	b, ok := Lookup("jcb")
	assert.True(t, ok)
	assert.Equal(t, JCB.Name, b.Name)

	b, ok = Lookup("unknown")
	assert.True(t, ok)
	assert.False(t, b.Known())

	_, ok = Lookup("unionpay")
	assert.False(t, ok)
}
