package entry

import (
	"fmt"
	"strings"
)

// Field identifies one input of the card form.
type Field int

const (
	FieldNone Field = iota
	FieldNumber
	FieldExpiration
	FieldSecurityCode
	FieldPostalCode
)

// Fields lists the inputs in focus order.
var Fields = []Field{FieldNumber, FieldExpiration, FieldSecurityCode, FieldPostalCode}

var fieldNames = map[Field]string{
	FieldNone:         "none",
	FieldNumber:       "number",
	FieldExpiration:   "expiration",
	FieldSecurityCode: "security_code",
	FieldPostalCode:   "postal_code",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	if string(text) == fieldNames[FieldNone] {
		*f = FieldNone
		return nil
	}
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Field) valid() bool {
	return f >= FieldNumber && f <= FieldPostalCode
}

// ParseField accepts the field names used on the wire, plus a few aliases.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "number", "card", "card_number":
		return FieldNumber, nil
	case "expiration", "exp", "expiry":
		return FieldExpiration, nil
	case "security_code", "cvc", "cvv":
		return FieldSecurityCode, nil
	case "postal_code", "zip", "postal":
		return FieldPostalCode, nil
	}
	return FieldNone, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// FocusReason tells the host why focus moved.
type FocusReason int

const (
	// FocusAdvance follows a field becoming complete and valid.
	FocusAdvance FocusReason = iota + 1
	// FocusManual follows an explicit focus request.
	FocusManual
)

func (r FocusReason) String() string {
	switch r {
	case FocusAdvance:
		return "advance"
	case FocusManual:
		return "manual"
	}
	return ""
}

func (r FocusReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *FocusReason) UnmarshalText(text []byte) error {
	switch string(text) {
	case "advance":
		*r = FocusAdvance
	case "manual":
		*r = FocusManual
	case "":
		*r = 0
	default:
		return fmt.Errorf("unknown focus reason %q", text)
	}
	return nil
}
