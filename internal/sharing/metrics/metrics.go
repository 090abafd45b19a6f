package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the sharing module.
type Metrics struct {
	// Intake checks by gating reason
	IntakeChecks *prometheus.CounterVec

	// Matches found vs not
	Matches *prometheus.CounterVec

	// Full intake check latency including contributor resolution
	CheckLatency prometheus.Histogram
}

// New creates a Metrics instance with all sharing module metrics registered.
func New() *Metrics {
	return &Metrics{
		IntakeChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carelink_intake_checks_total",
			Help: "Total intake checks by gating reason",
		}, []string{"reason"}),

		Matches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carelink_intake_matches_total",
			Help: "Total intake checks by match outcome",
		}, []string{"found"}),

		CheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "carelink_intake_check_duration_seconds",
			Help:    "Duration of intake checks including contributor resolution",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// ObserveCheck records one completed intake check.
func (m *Metrics) ObserveCheck(reason string, matchFound bool, d time.Duration) {
	if m != nil {
		m.IntakeChecks.WithLabelValues(reason).Inc()
		found := "false"
		if matchFound {
			found = "true"
		}
		m.Matches.WithLabelValues(found).Inc()
		m.CheckLatency.Observe(d.Seconds())
	}
}
