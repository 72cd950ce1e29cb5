package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Validations        *prometheus.CounterVec
	FieldRejections    *prometheus.CounterVec
	MissingInput       prometheus.Counter
	Classifications    *prometheus.CounterVec
	ValidationDuration prometheus.Histogram
}

// New registers the UEN metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the UEN metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration panics.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uen_validations_total",
			Help: "Total number of UEN records validated, labeled by result",
		}, []string{"result"}),
		FieldRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uen_field_rejections_total",
			Help: "Total number of field format errors, labeled by field",
		}, []string{"field"}),
		MissingInput: f.NewCounter(prometheus.CounterOpts{
			Name: "uen_missing_input_total",
			Help: "Total number of records submitted with every field blank",
		}),
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uen_classifications_total",
			Help: "Total number of classify lookups, labeled by detected kind",
		}, []string{"kind"}),
		ValidationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "uen_validation_duration_seconds",
			Help:    "Duration of a single record validation",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
	}
}

func (m *Metrics) IncrementValidations(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.Validations.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementFieldRejection(field string) {
	m.FieldRejections.WithLabelValues(field).Inc()
}

func (m *Metrics) IncrementMissingInput() {
	m.MissingInput.Inc()
}

// IncrementClassification counts a classify lookup; kind is "unknown" on no match.
func (m *Metrics) IncrementClassification(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	m.Classifications.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveValidation(start time.Time) {
	m.ValidationDuration.Observe(time.Since(start).Seconds())
}
