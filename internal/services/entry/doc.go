/*
Package entry implements the per-form state machine of a card entry widget.

A Form tracks four fields (card number, expiration, security code and an
optional postal code), each as Empty, Partial, Valid or Invalid. Every text
change is formatted and re-evaluated synchronously, and the form emits:
- ValidityChanged when the combined validity flips (edge-triggered)
- BrandChanged when the detected card brand changes
- FocusRequested when a field becomes complete and valid, or on a manual jump

The engine never moves UI focus itself; hosts act on FocusRequested.

Usage:

	form := entry.New(entry.DefaultConfig())
	form.SetOnCardValidCallback(func(valid bool) { ... })
	form.AddObserver(entry.ObserverFuncs{
	    OnFocus: func(f entry.Field, _ entry.FocusReason) { focusInput(f) },
	})

	display := form.SetText(entry.FieldNumber, "41111111")  // "4111 1111"
	valid := form.IsCreditCardValid()
*/
package entry
