package metrics

import "github.com/prometheus/client_golang/prometheus"

// Validation Prometheus metrics.
var (
	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trossd",
			Name:      "validation_failures_total",
			Help:      "Total number of rejected request parameters",
		},
		[]string{"validator", "field"},
	)

	ValidationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trossd",
			Name:      "validation_requests_total",
			Help:      "Total number of validated request parameters",
		},
		[]string{"validator"},
	)
)

var valMetricsRegistered bool

// RegisterValidationMetrics registers Prometheus validation metrics. Must be called once from main.
func RegisterValidationMetrics() {
	if valMetricsRegistered {
		return
	}
	prometheus.MustRegister(ValidationFailuresTotal)
	prometheus.MustRegister(ValidationRequestsTotal)
	valMetricsRegistered = true
}
