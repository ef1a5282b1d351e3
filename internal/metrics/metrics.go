// Package metrics defines the Prometheus collectors for solve and
// calculate requests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics groups the engine collectors.
type Metrics struct {
	// Requests counts requests. Labels: op (calculate, solve, root),
	// kind (single, linear, nonlinear, or "-"), outcome (ok, error).
	Requests *prometheus.CounterVec

	// Failures counts failed requests by taxonomy category.
	Failures *prometheus.CounterVec

	// Duration measures request latency in seconds. Labels: op, kind.
	Duration *prometheus.HistogramVec

	// NewtonAttempts records how many initial guesses a Newton solve used.
	NewtonAttempts prometheus.Histogram
}

// New registers the collectors with reg. A nil reg uses a private
// registry so several sessions can coexist in one process.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eqsolve",
			Name:      "requests_total",
			Help:      "Calculate and solve requests by operation, kind and outcome",
		}, []string{"op", "kind", "outcome"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eqsolve",
			Name:      "failures_total",
			Help:      "Failed requests by error category",
		}, []string{"op", "category"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eqsolve",
			Name:      "request_duration_seconds",
			Help:      "Request latency in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"op", "kind"}),
		NewtonAttempts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "eqsolve",
			Subsystem: "newton",
			Name:      "attempts",
			Help:      "Initial guesses tried per nonlinear solve",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 7, 8},
		}),
	}
}

// Observe records one request. category is ignored on success.
func (m *Metrics) Observe(op, kind, category string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
		m.Failures.WithLabelValues(op, category).Inc()
	}
	m.Requests.WithLabelValues(op, kind, outcome).Inc()
	m.Duration.WithLabelValues(op, kind).Observe(elapsed.Seconds())
}

// ObserveAttempts records the guess count of a Newton solve.
func (m *Metrics) ObserveAttempts(n int) {
	if m == nil {
		return
	}
	m.NewtonAttempts.Observe(float64(n))
}
