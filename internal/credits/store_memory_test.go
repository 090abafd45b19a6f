package credits

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_InsertIfAbsent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	event := Event{ID: "e1", Fingerprint: "fp", From: "A", To: "B", Timestamp: time.Now()}

	ok, err := store.InsertIfAbsent(ctx, event)
	require.NoError(t, err)
	assert.True(t, ok)

	dup := event
	dup.ID = "e2"
	ok, err = store.InsertIfAbsent(ctx, dup)
	require.NoError(t, err)
	assert.False(t, ok, "same triple must lose even with a fresh event id")

	totals, err := store.CountByContributor(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1}, totals)
}

func TestInMemoryStore_ConcurrentInsertsOneWinner(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := store.InsertIfAbsent(ctx, Event{
				ID: fmt.Sprintf("e%d", i), Fingerprint: "fp", From: "A", To: "B",
			})
			assert.NoError(t, err)
			wins <- ok
		}(i)
	}
	wg.Wait()
	close(wins)

	winners := 0
	for ok := range wins {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent insert may win the triple")
}

func TestInMemoryStore_RecentWindow(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := store.InsertIfAbsent(ctx, Event{
			ID: fmt.Sprintf("e%d", i), Fingerprint: fmt.Sprintf("fp%d", i), From: "A", To: "B",
		})
		require.NoError(t, err)
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "e3", recent[0].ID)
	assert.Equal(t, "e2", recent[1].ID)

	all, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4, "window larger than the log returns the whole log")
}
