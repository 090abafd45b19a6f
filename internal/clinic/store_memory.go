package clinic

import (
	"context"
	"sort"
	"sync"

	"carelink/pkg/platform/sentinel"
)

// InMemoryStore keeps clinics in a mutex-guarded map. The single write lock
// gives per-clinic mutual exclusion; reads copy out under the read lock so
// callers always see a consistent snapshot.
type InMemoryStore struct {
	mu      sync.RWMutex
	clinics map[string]Clinic
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{clinics: make(map[string]Clinic)}
}

// Put inserts or replaces a clinic. Used by seeding and tests.
func (s *InMemoryStore) Put(_ context.Context, c Clinic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clinics[c.ID] = c
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Clinic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clinics[id]
	if !ok {
		return Clinic{}, sentinel.ErrNotFound
	}
	return c, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Clinic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Clinic, 0, len(s.clinics))
	for _, c := range s.clinics {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, id string, optedIn bool, contributionPct int) (Clinic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clinics[id]
	if !ok {
		return Clinic{}, sentinel.ErrNotFound
	}
	c.OptedIn = optedIn
	c.ContributionPct = contributionPct
	s.clinics[id] = c
	return c, nil
}
