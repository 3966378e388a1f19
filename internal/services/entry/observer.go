package entry

import creditcard "ccentry/internal/services/credit-card"

// Observer receives the notifications a form emits. Calls happen
// synchronously inside the form operation that caused them.
type Observer interface {
	ValidityChanged(valid bool)
	BrandChanged(brand creditcard.Brand)
	FocusRequested(field Field, reason FocusReason)
}

// CardValidCallback is invoked with the new overall validity each time it
// flips.
type CardValidCallback func(valid bool)

// ObserverFuncs adapts plain functions to Observer. Nil members are skipped.
type ObserverFuncs struct {
	OnValidity func(valid bool)
	OnBrand    func(brand creditcard.Brand)
	OnFocus    func(field Field, reason FocusReason)
}

func (o ObserverFuncs) ValidityChanged(valid bool) {
	if o.OnValidity != nil {
		o.OnValidity(valid)
	}
}

func (o ObserverFuncs) BrandChanged(brand creditcard.Brand) {
	if o.OnBrand != nil {
		o.OnBrand(brand)
	}
}

func (o ObserverFuncs) FocusRequested(field Field, reason FocusReason) {
	if o.OnFocus != nil {
		o.OnFocus(field, reason)
	}
}

// EventKind names a form notification.
type EventKind string

const (
	EventValidity EventKind = "validity_changed"
	EventBrand    EventKind = "brand_changed"
	EventFocus    EventKind = "focus_requested"
)

// Event is a recorded notification.
type Event struct {
	Kind   EventKind   `json:"kind"`
	Valid  *bool       `json:"valid,omitempty"`
	Brand  string      `json:"brand,omitempty"`
	Field  Field       `json:"field,omitempty"`
	Reason FocusReason `json:"reason,omitempty"`
}

// Recorder is an Observer that buffers events until drained.
type Recorder struct {
	events []Event
}

func (r *Recorder) ValidityChanged(valid bool) {
	r.events = append(r.events, Event{Kind: EventValidity, Valid: &valid})
}

func (r *Recorder) BrandChanged(brand creditcard.Brand) {
	r.events = append(r.events, Event{Kind: EventBrand, Brand: brand.Code})
}

func (r *Recorder) FocusRequested(field Field, reason FocusReason) {
	r.events = append(r.events, Event{Kind: EventFocus, Field: field, Reason: reason})
}

// Drain returns the buffered events and resets the buffer.
func (r *Recorder) Drain() []Event {
	events := r.events
	r.events = nil
	return events
}
