package credits

import "context"

// Store is the append-only credit event log. InsertIfAbsent is the single
// atomic check-and-set in the system: implementations must guarantee that for
// a given triple (fingerprint, from, to) exactly one insert ever reports
// inserted=true, no matter how many concurrent replays race.
type Store interface {
	// InsertIfAbsent appends the event unless its triple already exists.
	// Returns whether the event was newly inserted.
	InsertIfAbsent(ctx context.Context, event Event) (inserted bool, err error)
	// Recent returns up to n events, newest first.
	Recent(ctx context.Context, n int) ([]Event, error)
	// CountByContributor derives per-clinic totals by counting distinct
	// events; totals are never stored independently.
	CountByContributor(ctx context.Context) (map[string]int, error)
}
