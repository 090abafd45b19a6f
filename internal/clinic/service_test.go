package clinic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "carelink/pkg/domain-errors"
)

func seededService(t *testing.T) (*Service, *InMemoryStore) {
	t.Helper()
	store := NewInMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, Clinic{ID: "A", Name: "Clinic A", OptedIn: true, ContributionPct: 85}))
	require.NoError(t, store.Put(ctx, Clinic{ID: "B", Name: "Clinic B", OptedIn: false, ContributionPct: 0}))
	require.NoError(t, store.Put(ctx, Clinic{ID: "C", Name: "Clinic C", OptedIn: true, ContributionPct: 30}))
	return NewService(store, nil), store
}

func TestUpdateSettings(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	updated, err := svc.UpdateSettings(ctx, "C", true, 45)
	require.NoError(t, err)
	assert.Equal(t, 45, updated.ContributionPct)
	assert.Equal(t, LevelCollaborative, updated.Level())
}

func TestUpdateSettings_InvalidPercentageLeavesStateUntouched(t *testing.T) {
	svc, store := seededService(t)
	ctx := context.Background()

	for _, pct := range []int{-1, 101} {
		_, err := svc.UpdateSettings(ctx, "A", true, pct)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest), "pct=%d", pct)
	}

	a, err := store.Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 85, a.ContributionPct, "rejected update must not change stored settings")
}

func TestUpdateSettings_UnknownClinic(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.UpdateSettings(context.Background(), "nope", true, 50)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestGet_UnknownClinic(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestNetworkStats(t *testing.T) {
	svc, _ := seededService(t)

	stats, err := svc.NetworkStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ParticipatingCount)
	assert.Equal(t, 67, stats.ParticipatingPct)
}

func TestNetworkStats_EmptyNetwork(t *testing.T) {
	svc := NewService(NewInMemoryStore(), nil)

	stats, err := svc.NetworkStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.ParticipatingCount)
	assert.Zero(t, stats.ParticipatingPct)
}
