package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/clinic"
	"carelink/internal/record"
	"carelink/internal/seed"
	dErrors "carelink/pkg/domain-errors"
)

func demoBenchmark(t *testing.T) (*Service, *clinic.InMemoryStore, *record.InMemoryStore) {
	t.Helper()
	ctx := context.Background()

	clinicStore := clinic.NewInMemoryStore()
	recordStore := record.NewInMemoryStore()
	require.NoError(t, seed.Demo(ctx, clinicStore, recordStore))

	return NewService(clinic.NewService(clinicStore, nil), recordStore), clinicStore, recordStore
}

func TestForClinic_NotOptedIn(t *testing.T) {
	svc, _, _ := demoBenchmark(t)

	result, err := svc.ForClinic(context.Background(), "B")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonNotOptedIn, result.Reason)
}

func TestForClinic_LockedAtLevelZero(t *testing.T) {
	svc, clinicStore, _ := demoBenchmark(t)
	ctx := context.Background()
	require.NoError(t, clinicStore.Put(ctx, clinic.Clinic{ID: "D", Name: "Clinic D", OptedIn: true, ContributionPct: 5}))

	result, err := svc.ForClinic(ctx, "D")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonLockedLevel0, result.Reason)
}

func TestForClinic_EligibleWithDemoData(t *testing.T) {
	svc, _, _ := demoBenchmark(t)

	// Clinic A samples: patients one, two and four -> improving, improving, plateau.
	result, err := svc.ForClinic(context.Background(), "A")
	require.NoError(t, err)

	require.True(t, result.Eligible)
	assert.Empty(t, result.Reason)
	assert.InDelta(t, 2.0/3.0, result.Own.Improving, 1e-9)
	assert.InDelta(t, 1.0/3.0, result.Own.Plateau, 1e-9)
	assert.Zero(t, result.Own.Worse)

	// The only eligible other participant is C: patients one (plateau) and
	// three (improving), half each.
	assert.InDelta(t, 0.5, result.Network.Improving, 1e-9)
	assert.InDelta(t, 0.5, result.Network.Plateau, 1e-9)
	assert.Zero(t, result.Network.Worse)
}

func TestForClinic_ParticipantLevelAveraging(t *testing.T) {
	svc, clinicStore, recordStore := demoBenchmark(t)
	ctx := context.Background()

	// A small clinic with one all-worse patient weighs the same as a large one.
	require.NoError(t, clinicStore.Put(ctx, clinic.Clinic{ID: "D", Name: "Clinic D", OptedIn: true, ContributionPct: 50}))
	require.NoError(t, recordStore.Put(ctx, record.PatientRecord{
		ID: "recD", ClinicID: "D", Fingerprint: "fp-d",
		EndDate: "2024-05-01", ResponseTrend: record.TrendWorse,
	}))

	result, err := svc.ForClinic(ctx, "A")
	require.NoError(t, err)
	require.True(t, result.Eligible)

	// Mean of C's (0.5, 0.5, 0) and D's (0, 0, 1).
	assert.InDelta(t, 0.25, result.Network.Improving, 1e-9)
	assert.InDelta(t, 0.25, result.Network.Plateau, 1e-9)
	assert.InDelta(t, 0.5, result.Network.Worse, 1e-9)
}

func TestForClinic_NoOtherParticipants(t *testing.T) {
	ctx := context.Background()
	clinicStore := clinic.NewInMemoryStore()
	recordStore := record.NewInMemoryStore()
	require.NoError(t, clinicStore.Put(ctx, clinic.Clinic{ID: "A", Name: "Clinic A", OptedIn: true, ContributionPct: 85}))
	svc := NewService(clinic.NewService(clinicStore, nil), recordStore)

	result, err := svc.ForClinic(ctx, "A")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonNoParticipants, result.Reason)
}

func TestForClinic_ZeroSamplesStillEligible(t *testing.T) {
	svc, clinicStore, _ := demoBenchmark(t)
	ctx := context.Background()

	// Opted in and above level 0, but holds no records at all.
	require.NoError(t, clinicStore.Put(ctx, clinic.Clinic{ID: "E", Name: "Clinic E", OptedIn: true, ContributionPct: 60}))

	result, err := svc.ForClinic(ctx, "E")
	require.NoError(t, err)
	require.True(t, result.Eligible)
	assert.Zero(t, result.Own.Improving+result.Own.Plateau+result.Own.Worse,
		"no samples yields the all-zero distribution, not an error")
	assert.Positive(t, result.Network.Improving+result.Network.Plateau+result.Network.Worse)
}

func TestForClinic_UnknownClinic(t *testing.T) {
	svc, _, _ := demoBenchmark(t)

	_, err := svc.ForClinic(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}
