package entry

import (
	"time"

	creditcard "ccentry/internal/services/credit-card"

	"go.uber.org/zap"
)

type fieldValue struct {
	text  string
	state creditcard.State
}

// Form is the validation engine behind one card entry form. It tracks the
// four fields, the detected brand and the focused field, and notifies
// observers on brand changes, validity edges and focus moves.
//
// A Form is not safe for concurrent use; all calls are expected on the thread
// delivering the host's input events.
type Form struct {
	config    Config
	fields    [FieldPostalCode + 1]fieldValue
	brand     creditcard.Brand
	valid     bool
	focus     Field
	now       func() time.Time
	logger    *zap.Logger
	onValid   CardValidCallback
	observers []Observer
}

// New creates an empty form focused on the card number.
func New(cfg Config, opts ...Option) *Form {
	if cfg.CardNumberHint == "" {
		cfg.CardNumberHint = DefaultCardNumberHint
	}

	f := &Form{
		config: cfg,
		brand:  creditcard.Unknown,
		focus:  FieldNumber,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Config() Config {
	return f.config
}

// SetOnCardValidCallback replaces the validity callback. It fires with the
// new value every time overall validity flips.
func (f *Form) SetOnCardValidCallback(cb CardValidCallback) {
	f.onValid = cb
}

// AddObserver registers o for every later notification.
func (f *Form) AddObserver(o Observer) {
	if o != nil {
		f.observers = append(f.observers, o)
	}
}

// SetText handles a text change on field and returns the text the host
// should display. Input is reformatted, never rejected with an error; text for
// an unknown field or a disabled postal code is ignored.
func (f *Form) SetText(field Field, text string) string {
	if !f.enabled(field) {
		f.logger.Debug("ignoring text for inactive field", zap.Stringer("field", field))
		return ""
	}

	before := f.fields[field].state
	switch field {
	case FieldNumber:
		f.setNumber(text)
	case FieldExpiration:
		f.setExpiration(text)
	case FieldSecurityCode:
		code := creditcard.FormatSecurityCode(text)
		f.fields[field] = fieldValue{text: code, state: creditcard.SecurityCodeState(code, f.brand)}
	case FieldPostalCode:
		zip := creditcard.FormatPostalCode(text)
		f.fields[field] = fieldValue{text: zip, state: creditcard.PostalCodeState(zip)}
	}
	after := f.fields[field].state

	f.logger.Debug("field evaluated",
		zap.Stringer("field", field),
		zap.Stringer("state", after),
		zap.String("brand", f.brand.Code),
	)

	f.updateValidity()

	if before != creditcard.StateValid && after == creditcard.StateValid && f.complete(field) {
		if next := f.next(field); next != FieldNone {
			f.moveFocus(next, FocusAdvance)
		}
	}
	return f.fields[field].text
}

func (f *Form) setNumber(text string) {
	digits := creditcard.ApplyEdit(f.fields[FieldNumber].text, text)
	if len(digits) > creditcard.MaxNumberLength {
		digits = digits[:creditcard.MaxNumberLength]
	}

	brand := creditcard.Classify(digits)
	if limit := brand.MaxLength(); len(digits) > limit {
		digits = digits[:limit]
	}

	f.fields[FieldNumber] = fieldValue{
		text:  creditcard.FormatNumber(digits, brand),
		state: creditcard.NumberState(digits, brand),
	}

	if !brand.Equal(f.brand) {
		f.brand = brand
		f.logger.Debug("brand changed", zap.String("brand", brand.Code))
		for _, o := range f.observers {
			o.BrandChanged(brand)
		}
		// the required security code length depends on the brand
		code := f.fields[FieldSecurityCode].text
		f.fields[FieldSecurityCode].state = creditcard.SecurityCodeState(code, brand)
	}
}

func (f *Form) setExpiration(text string) {
	prev := f.fields[FieldExpiration].text
	display := creditcard.FormatExpiration(text)
	if digits := creditcard.ApplyEdit(prev, text); digits != creditcard.Digits(text) {
		display = creditcard.FormatExpiration(digits)
	}

	_, state := creditcard.ParseExpiration(display, f.now())
	f.fields[FieldExpiration] = fieldValue{text: display, state: state}
}

// complete reports whether field holds as much input as it can take.
func (f *Form) complete(field Field) bool {
	text := f.fields[field].text
	switch field {
	case FieldNumber:
		return f.brand.CompleteLength(len(creditcard.Digits(text)))
	case FieldExpiration:
		return creditcard.ExpirationComplete(text)
	case FieldSecurityCode:
		return len(text) == f.brand.SecurityCodeLength
	}
	return false
}

func (f *Form) next(field Field) Field {
	switch field {
	case FieldNumber:
		return FieldExpiration
	case FieldExpiration:
		return FieldSecurityCode
	case FieldSecurityCode:
		if f.config.IncludeZip {
			return FieldPostalCode
		}
	}
	return FieldNone
}

func (f *Form) enabled(field Field) bool {
	if field == FieldPostalCode {
		return f.config.IncludeZip
	}
	return field.valid()
}

// updateValidity recomputes the overall result and notifies only on a change.
func (f *Form) updateValidity() {
	valid := f.fields[FieldNumber].state == creditcard.StateValid &&
		f.fields[FieldExpiration].state == creditcard.StateValid &&
		f.fields[FieldSecurityCode].state == creditcard.StateValid &&
		(!f.config.IncludeZip || f.fields[FieldPostalCode].state == creditcard.StateValid)

	if valid == f.valid {
		return
	}
	f.valid = valid
	f.logger.Debug("card validity changed", zap.Bool("valid", valid))

	if f.onValid != nil {
		f.onValid(valid)
	}
	for _, o := range f.observers {
		o.ValidityChanged(valid)
	}
}

func (f *Form) moveFocus(field Field, reason FocusReason) {
	f.focus = field
	for _, o := range f.observers {
		o.FocusRequested(field, reason)
	}
}

// Focus jumps to field regardless of the advance sequence. Field state is
// left untouched. It returns false for an unknown or disabled field.
func (f *Form) Focus(field Field) bool {
	if !f.enabled(field) {
		return false
	}
	f.moveFocus(field, FocusManual)
	return true
}

func (f *Form) FocusCreditCard() bool {
	return f.Focus(FieldNumber)
}

func (f *Form) FocusExp() bool {
	return f.Focus(FieldExpiration)
}

func (f *Form) FocusSecurityCode() bool {
	return f.Focus(FieldSecurityCode)
}

func (f *Form) FocusZip() bool {
	return f.Focus(FieldPostalCode)
}

// Clear empties every field and returns focus to the card number.
func (f *Form) Clear() {
	for i := range f.fields {
		f.fields[i] = fieldValue{}
	}
	if !f.brand.Equal(creditcard.Unknown) {
		f.brand = creditcard.Unknown
		for _, o := range f.observers {
			o.BrandChanged(f.brand)
		}
	}
	f.updateValidity()
	f.moveFocus(FieldNumber, FocusManual)
}

// IsCreditCardValid reports the combined validity of all required fields.
func (f *Form) IsCreditCardValid() bool {
	return f.valid
}

// CreditCard assembles the card from the current field contents.
func (f *Form) CreditCard() creditcard.CreditCard {
	exp, _ := creditcard.ParseExpiration(f.fields[FieldExpiration].text, f.now())
	card := creditcard.CreditCard{
		Number:       creditcard.Digits(f.fields[FieldNumber].text),
		Expiration:   exp,
		SecurityCode: f.fields[FieldSecurityCode].text,
		Brand:        f.brand,
	}
	if f.config.IncludeZip {
		card.PostalCode = f.fields[FieldPostalCode].text
	}
	return card
}

// State returns the validity of one field. A disabled postal code reports
// StateValid.
func (f *Form) State(field Field) creditcard.State {
	if field == FieldPostalCode && !f.config.IncludeZip {
		return creditcard.StateValid
	}
	if !field.valid() {
		return creditcard.StateEmpty
	}
	return f.fields[field].state
}

// Text returns the display text of one field.
func (f *Form) Text(field Field) string {
	if !field.valid() {
		return ""
	}
	return f.fields[field].text
}

func (f *Form) Brand() creditcard.Brand {
	return f.brand
}

// Focused returns the field the engine last moved focus to.
func (f *Form) Focused() Field {
	return f.focus
}
