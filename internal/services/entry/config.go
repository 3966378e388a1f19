package entry

import (
	"time"

	"go.uber.org/zap"
)

// DefaultCardNumberHint is shown in an empty number field.
const DefaultCardNumberHint = "1234 5678 9012 3456"

// Config is fixed when a form is constructed. Only IncludeZip and
// IncludeHelper change engine behaviour; the rest is carried for the host.
type Config struct {
	IncludeZip      bool   `json:"include_zip"`
	IncludeHelper   bool   `json:"include_helper"`
	CardNumberHint  string `json:"card_number_hint"`
	HelperTextColor string `json:"helper_text_color,omitempty"`
	InputBackground string `json:"input_background,omitempty"`
}

// DefaultConfig mirrors the widget defaults: zip and helper text enabled.
func DefaultConfig() Config {
	return Config{
		IncludeZip:     true,
		IncludeHelper:  true,
		CardNumberHint: DefaultCardNumberHint,
	}
}

// Option customizes a Form.
type Option func(*Form)

// WithClock replaces time.Now for expiration checks.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithLogger sets the logger used for debug tracing. Card digits are never
// logged.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithObserver registers an observer at construction.
func WithObserver(o Observer) Option {
	return func(f *Form) {
		f.AddObserver(o)
	}
}
