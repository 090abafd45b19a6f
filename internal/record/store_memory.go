package record

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore indexes records by fingerprint and by owning clinic.
type InMemoryStore struct {
	mu            sync.RWMutex
	byFingerprint map[string][]PatientRecord
	byClinic      map[string][]PatientRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byFingerprint: make(map[string][]PatientRecord),
		byClinic:      make(map[string][]PatientRecord),
	}
}

func (s *InMemoryStore) Put(_ context.Context, rec PatientRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byFingerprint[rec.Fingerprint] = append(s.byFingerprint[rec.Fingerprint], rec)
	s.byClinic[rec.ClinicID] = append(s.byClinic[rec.ClinicID], rec)
	return nil
}

func (s *InMemoryStore) FindByFingerprint(_ context.Context, fingerprint string) ([]PatientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]PatientRecord{}, s.byFingerprint[fingerprint]...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClinicID != out[j].ClinicID {
			return out[i].ClinicID < out[j].ClinicID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *InMemoryStore) ListByClinic(_ context.Context, clinicID string) ([]PatientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]PatientRecord{}, s.byClinic[clinicID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
