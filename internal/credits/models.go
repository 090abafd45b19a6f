package credits

import "time"

// Event records one reuse of shared history: the requester (To) continued
// care using data contributed by From for the patient identified by
// Fingerprint. Events are immutable and append-only; the triple
// (fingerprint, from, to) is unique across the log.
type Event struct {
	ID          string
	Fingerprint string
	From        string // contributing clinic earning the credit
	To          string // requesting clinic that reused the history
	Timestamp   time.Time
}

// TripleKey is the composite idempotency key for an event.
func (e Event) TripleKey() string {
	return e.Fingerprint + ":" + e.From + ":" + e.To
}

// Status classifies the outcome of a reuse recording.
type Status string

const (
	StatusRecorded        Status = "recorded"
	StatusAlreadyRecorded Status = "already_recorded"
	StatusNoContributors  Status = "no_contributors"
)

// ReuseResult is the outcome of one continue-care action.
type ReuseResult struct {
	Status         Status
	Credited       bool
	CreditsAwarded int
	Events         []Event
}

// Dashboard summarizes the ledger: derived totals plus a bounded recent view.
type Dashboard struct {
	CreditsByClinic map[string]int
	RecentEvents    []Event
}
