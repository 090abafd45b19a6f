package clinic

import "context"

// Store persists clinic settings. Implementations must apply updates under
// per-clinic mutual exclusion and must return consistent snapshots from reads;
// a reader never observes a partially applied update.
//
// Stores return sentinel errors from pkg/platform/sentinel; the service
// translates them into domain errors.
type Store interface {
	Get(ctx context.Context, id string) (Clinic, error)
	// List returns all clinics ordered by id for deterministic output.
	List(ctx context.Context) ([]Clinic, error)
	Update(ctx context.Context, id string, optedIn bool, contributionPct int) (Clinic, error)
}
