package record

import "context"

// Store resolves patient records. Records are append-only in this core;
// reads must observe a consistent snapshot.
type Store interface {
	// FindByFingerprint returns every clinic's records for a patient key,
	// ordered by clinic id then record id.
	FindByFingerprint(ctx context.Context, fingerprint string) ([]PatientRecord, error)
	// ListByClinic returns all records owned by a clinic. Feeds the outcome
	// sample source for benchmarking.
	ListByClinic(ctx context.Context, clinicID string) ([]PatientRecord, error)
	Put(ctx context.Context, rec PatientRecord) error
}
