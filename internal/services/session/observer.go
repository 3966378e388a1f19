package session

import (
	"ccentry/internal/metrics"
	creditcard "ccentry/internal/services/credit-card"
	"ccentry/internal/services/entry"
)

// metricsObserver forwards form notifications to the metrics collector.
type metricsObserver struct {
	metrics metrics.Collector
}

func (o metricsObserver) ValidityChanged(valid bool) {
	o.metrics.ObserveValidityChange(valid)
}

func (o metricsObserver) BrandChanged(brand creditcard.Brand) {
	o.metrics.ObserveBrandChange(brand.Code)
}

func (o metricsObserver) FocusRequested(field entry.Field, reason entry.FocusReason) {
	if reason == entry.FocusAdvance {
		o.metrics.ObserveFocusAdvance(field.String())
	}
}
