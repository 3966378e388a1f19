// Package metrics exposes prometheus counters for card entry activity.
// Labels never carry card data.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records card entry activity.
type Collector interface {
	ObserveValidation(source, brand string, valid bool)
	ObserveValidityChange(valid bool)
	ObserveBrandChange(brand string)
	ObserveFocusAdvance(field string)
	SetActiveSessions(count int)
}

var validationCounts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ccentry",
	Name:      "validations_total",
	Help:      "Card validations by source, brand and outcome.",
}, []string{"source", "brand", "valid"})

var validityChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ccentry",
	Name:      "validity_changes_total",
	Help:      "Edge-triggered card validity changes.",
}, []string{"valid"})

var brandChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ccentry",
	Name:      "brand_changes_total",
	Help:      "Brand re-classifications while typing.",
}, []string{"brand"})

var focusAdvances = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ccentry",
	Name:      "focus_advances_total",
	Help:      "Automatic focus advances by target field.",
}, []string{"field"})

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ccentry",
	Name:      "sessions_active",
	Help:      "Number of live form sessions.",
})

// PrometheusCollector writes to the default prometheus registry.
type PrometheusCollector struct{}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{}
}

func (PrometheusCollector) ObserveValidation(source, brand string, valid bool) {
	if len(source) == 0 || len(brand) == 0 {
		return
	}
	validationCounts.With(prometheus.Labels{
		"source": source,
		"brand":  brand,
		"valid":  strconv.FormatBool(valid),
	}).Inc()
}

func (PrometheusCollector) ObserveValidityChange(valid bool) {
	validityChanges.With(prometheus.Labels{"valid": strconv.FormatBool(valid)}).Inc()
}

func (PrometheusCollector) ObserveBrandChange(brand string) {
	if len(brand) == 0 {
		return
	}
	brandChanges.With(prometheus.Labels{"brand": brand}).Inc()
}

func (PrometheusCollector) ObserveFocusAdvance(field string) {
	if len(field) == 0 {
		return
	}
	focusAdvances.With(prometheus.Labels{"field": field}).Inc()
}

func (PrometheusCollector) SetActiveSessions(count int) {
	activeSessions.Set(float64(count))
}

// NoopCollector is a no-op implementation of Collector
type NoopCollector struct{}

func (NoopCollector) ObserveValidation(string, string, bool) {}
func (NoopCollector) ObserveValidityChange(bool)             {}
func (NoopCollector) ObserveBrandChange(string)              {}
func (NoopCollector) ObserveFocusAdvance(string)             {}
func (NoopCollector) SetActiveSessions(int)                  {}
