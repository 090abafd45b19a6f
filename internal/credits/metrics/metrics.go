package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the credit ledger.
type Metrics struct {
	// New credits awarded to contributors
	CreditsAwarded prometheus.Counter

	// Replayed reuse submissions absorbed by the idempotent insert
	ReplaysAbsorbed prometheus.Counter
}

// New creates a Metrics instance with all ledger metrics registered.
func New() *Metrics {
	return &Metrics{
		CreditsAwarded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carelink_continuity_credits_awarded_total",
			Help: "Total continuity credits awarded to contributing clinics",
		}),

		ReplaysAbsorbed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carelink_continuity_credit_replays_total",
			Help: "Reuse submissions whose triples already existed in the log",
		}),
	}
}

// AddAwarded records newly awarded credits.
func (m *Metrics) AddAwarded(n int) {
	if m != nil && n > 0 {
		m.CreditsAwarded.Add(float64(n))
	}
}

// IncReplay records an absorbed duplicate submission.
func (m *Metrics) IncReplay() {
	if m != nil {
		m.ReplaysAbsorbed.Inc()
	}
}
