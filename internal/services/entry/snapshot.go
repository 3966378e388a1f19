package entry

import creditcard "ccentry/internal/services/credit-card"

// FieldSnapshot is the display text and state of one field.
type FieldSnapshot struct {
	Text  string           `json:"text"`
	State creditcard.State `json:"state"`
}

// Snapshot is a read-only view of a form suitable for a remote host.
type Snapshot struct {
	Number         FieldSnapshot  `json:"number"`
	Expiration     FieldSnapshot  `json:"expiration"`
	SecurityCode   FieldSnapshot  `json:"security_code"`
	PostalCode     *FieldSnapshot `json:"postal_code,omitempty"`
	Brand          string         `json:"brand"`
	BrandName      string         `json:"brand_name"`
	Valid          bool           `json:"valid"`
	Focus          Field          `json:"focus"`
	CardImage      string         `json:"card_image"`
	HelperText     string         `json:"helper_text,omitempty"`
	CardNumberHint string         `json:"card_number_hint"`
}

// Snapshot captures the current form state.
func (f *Form) Snapshot() Snapshot {
	snap := Snapshot{
		Number:         f.fieldSnapshot(FieldNumber),
		Expiration:     f.fieldSnapshot(FieldExpiration),
		SecurityCode:   f.fieldSnapshot(FieldSecurityCode),
		Brand:          f.brand.Code,
		BrandName:      f.brand.Name,
		Valid:          f.valid,
		Focus:          f.focus,
		CardImage:      f.CardImage(),
		HelperText:     f.HelperText(),
		CardNumberHint: f.config.CardNumberHint,
	}
	if f.config.IncludeZip {
		zip := f.fieldSnapshot(FieldPostalCode)
		snap.PostalCode = &zip
	}
	return snap
}

func (f *Form) fieldSnapshot(field Field) FieldSnapshot {
	return FieldSnapshot{Text: f.Text(field), State: f.State(field)}
}

// States returns every enabled field's state keyed by field.
func (f *Form) States() map[Field]creditcard.State {
	states := make(map[Field]creditcard.State, len(Fields))
	for _, field := range Fields {
		if f.enabled(field) {
			states[field] = f.State(field)
		}
	}
	return states
}
