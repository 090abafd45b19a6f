package credits

import (
	"context"
	"sync"
)

// InMemoryStore keeps the event log in process memory. One mutex guards the
// triple index and the log so insert-if-absent is a true atomic check-and-set.
type InMemoryStore struct {
	mu      sync.RWMutex
	triples map[string]struct{}
	events  []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{triples: make(map[string]struct{})}
}

func (s *InMemoryStore) InsertIfAbsent(_ context.Context, event Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := event.TripleKey()
	if _, exists := s.triples[key]; exists {
		return false, nil
	}
	s.triples[key] = struct{}{}
	s.events = append(s.events, event)
	return true, nil
}

func (s *InMemoryStore) Recent(_ context.Context, n int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.events) {
		n = len(s.events)
	}
	out := make([]Event, 0, n)
	for i := len(s.events) - 1; i >= len(s.events)-n; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

func (s *InMemoryStore) CountByContributor(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]int)
	for _, e := range s.events {
		totals[e.From]++
	}
	return totals, nil
}
