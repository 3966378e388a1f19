package creditcard

import (
	"strconv"

	"github.com/stripe/stripe-go/v72"
)

// PrefixRange matches card numbers whose first Width digits fall in Lo..Hi.
type PrefixRange struct {
	Lo    int
	Hi    int
	Width int
}

func prefix(lo, hi int) PrefixRange {
	return PrefixRange{Lo: lo, Hi: hi, Width: len(strconv.Itoa(lo))}
}

// Matches reports whether digits carry a complete prefix inside the range.
func (p PrefixRange) Matches(digits string) bool {
	if len(digits) < p.Width {
		return false
	}
	n, err := strconv.Atoi(digits[:p.Width])
	if err != nil {
		return false
	}
	return n >= p.Lo && n <= p.Hi
}

// Open reports whether digits, shorter than the prefix, can still grow into it.
func (p PrefixRange) Open(digits string) bool {
	if len(digits) >= p.Width {
		return p.Matches(digits)
	}
	lo := strconv.Itoa(p.Lo)
	hi := strconv.Itoa(p.Hi)
	head, err := strconv.Atoi(digits)
	if err != nil {
		return digits == ""
	}
	loHead, _ := strconv.Atoi(lo[:len(digits)])
	hiHead, _ := strconv.Atoi(hi[:len(digits)])
	return head >= loHead && head <= hiHead
}

// Brand describes the numbering scheme of one card issuer network.
type Brand struct {
	Code                string
	Name                string
	Prefixes            []PrefixRange
	Lengths             []int
	StandardLength      int
	SecurityCodeLength  int
	SecurityCodeOnFront bool
	Groups              []int
	FrontImage          string
	BackImage           string
}

var (
	Visa = Brand{
		Code:               "visa",
		Name:               "Visa",
		Prefixes:           []PrefixRange{prefix(4, 4)},
		Lengths:            []int{16, 19},
		StandardLength:     16,
		SecurityCodeLength: 3,
		Groups:             []int{4, 4, 4, 4},
		FrontImage:         "card_visa",
		BackImage:          "card_back",
	}
	MasterCard = Brand{
		Code:               "mastercard",
		Name:               "MasterCard",
		Prefixes:           []PrefixRange{prefix(51, 55), prefix(2221, 2720)},
		Lengths:            []int{16},
		StandardLength:     16,
		SecurityCodeLength: 3,
		Groups:             []int{4, 4, 4, 4},
		FrontImage:         "card_mastercard",
		BackImage:          "card_back",
	}
	Amex = Brand{
		Code:                "amex",
		Name:                "American Express",
		Prefixes:            []PrefixRange{prefix(34, 34), prefix(37, 37)},
		Lengths:             []int{15},
		StandardLength:      15,
		SecurityCodeLength:  4,
		SecurityCodeOnFront: true,
		Groups:              []int{4, 6, 5},
		FrontImage:          "card_amex",
		BackImage:           "card_amex_cvc",
	}
	Discover = Brand{
		Code:               "discover",
		Name:               "Discover",
		Prefixes:           []PrefixRange{prefix(6011, 6011), prefix(644, 649), prefix(65, 65), prefix(622126, 622925)},
		Lengths:            []int{16, 17, 18, 19},
		StandardLength:     16,
		SecurityCodeLength: 3,
		Groups:             []int{4, 4, 4, 4},
		FrontImage:         "card_discover",
		BackImage:          "card_back",
	}
	DinersClub = Brand{
		Code:               "diners",
		Name:               "Diners Club",
		Prefixes:           []PrefixRange{prefix(300, 305), prefix(3095, 3095), prefix(36, 36), prefix(38, 39)},
		Lengths:            []int{14, 15, 16, 17, 18, 19},
		StandardLength:     14,
		SecurityCodeLength: 3,
		Groups:             []int{4, 6, 4},
		FrontImage:         "card_diners",
		BackImage:          "card_back",
	}
	JCB = Brand{
		Code:               "jcb",
		Name:               "JCB",
		Prefixes:           []PrefixRange{prefix(3528, 3589)},
		Lengths:            []int{16, 17, 18, 19},
		StandardLength:     16,
		SecurityCodeLength: 3,
		Groups:             []int{4, 4, 4, 4},
		FrontImage:         "card_jcb",
		BackImage:          "card_back",
	}

	// Unknown is reported while no prefix rule matches yet.
	Unknown = Brand{
		Code:               "unknown",
		Name:               "Unknown",
		Lengths:            []int{MaxNumberLength},
		SecurityCodeLength: 3,
		Groups:             []int{4, 4, 4, 4},
		FrontImage:         "card_unknown",
		BackImage:          "card_back",
	}
	// Invalid is reported when the digits cannot belong to any brand.
	Invalid = Brand{
		Code:               "invalid",
		Name:               "Invalid",
		Lengths:            []int{MaxNumberLength},
		SecurityCodeLength: 3,
		Groups:             []int{4, 4, 4, 4},
		FrontImage:         "card_invalid",
		BackImage:          "card_back",
	}
)

// MaxNumberLength is the longest card number any known brand issues.
const MaxNumberLength = 19

// brands is in priority order; ties on prefix width go to the earlier entry.
var brands = []Brand{Visa, MasterCard, Amex, Discover, DinersClub, JCB}

// Brands returns the known brands in priority order.
func Brands() []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)
	return out
}

// Lookup returns the brand with the given code.
func Lookup(code string) (Brand, bool) {
	for _, b := range append(Brands(), Unknown, Invalid) {
		if b.Code == code {
			return b, true
		}
	}
	return Unknown, false
}

// Known reports whether b is one of the issuer brands rather than a sentinel.
func (b Brand) Known() bool {
	return b.Code != Unknown.Code && b.Code != Invalid.Code && b.Code != ""
}

// Equal compares brands by code.
func (b Brand) Equal(other Brand) bool {
	return b.Code == other.Code
}

func (b Brand) String() string {
	return b.Name
}

func (b Brand) MaxLength() int {
	if len(b.Lengths) == 0 {
		return MaxNumberLength
	}
	return b.Lengths[len(b.Lengths)-1]
}

// ValidLength reports whether n is one of the brand's issued lengths.
func (b Brand) ValidLength(n int) bool {
	if !b.Known() {
		return false
	}
	for _, l := range b.Lengths {
		if l == n {
			return true
		}
	}
	return false
}

// CompleteLength reports whether a number of n digits is at the brand's
// natural length, after which the number field has nothing left to take.
func (b Brand) CompleteLength(n int) bool {
	return b.Known() && (n == b.StandardLength || n == b.MaxLength())
}

// GroupsFor returns the display grouping for a number of n digits. Numbers
// longer than the brand's pattern fall back to groups of four.
func (b Brand) GroupsFor(n int) []int {
	total := 0
	for _, g := range b.Groups {
		total += g
	}
	if n <= total && len(b.Groups) > 0 {
		return b.Groups
	}
	groups := make([]int, 0, n/4+1)
	for n > 0 {
		g := 4
		if n < 4 {
			g = n
		}
		groups = append(groups, g)
		n -= g
	}
	return groups
}

// matchWidth is the width of the longest prefix rule matching digits, or 0.
func (b Brand) matchWidth(digits string) int {
	width := 0
	for _, p := range b.Prefixes {
		if p.Width > width && p.Matches(digits) {
			width = p.Width
		}
	}
	return width
}

// StripeBrand maps the brand onto stripe-go's card brand names.
func (b Brand) StripeBrand() stripe.CardBrand {
	switch b.Code {
	case Visa.Code:
		return stripe.CardBrandVisa
	case MasterCard.Code:
		return stripe.CardBrandMasterCard
	case Amex.Code:
		return stripe.CardBrandAmex
	case Discover.Code:
		return stripe.CardBrandDiscover
	case DinersClub.Code:
		return stripe.CardBrandDinersClub
	case JCB.Code:
		return stripe.CardBrandJCB
	default:
		return stripe.CardBrandUnknown
	}
}

// Classify returns the most specific brand matching the digits of number.
// Non-digit characters are ignored.
func Classify(number string) Brand {
	digits := Digits(number)
	if len(digits) > MaxNumberLength {
		return Invalid
	}

	best, bestWidth := Unknown, 0
	for _, b := range brands {
		if w := b.matchWidth(digits); w > bestWidth {
			best, bestWidth = b, w
		}
	}
	return best
}

// CouldMatch reports whether digits is a prefix that some brand still accepts.
func CouldMatch(number string) bool {
	digits := Digits(number)
	if len(digits) > MaxNumberLength {
		return false
	}
	for _, b := range brands {
		for _, p := range b.Prefixes {
			if p.Open(digits) {
				return true
			}
		}
	}
	return false
}
