package clinic

import (
	"context"
	"errors"
	"fmt"
	"math"

	"carelink/internal/audit"
	dErrors "carelink/pkg/domain-errors"
	"carelink/pkg/platform/sentinel"
)

// Service owns clinic settings reads and the explicit settings update. It
// validates before touching the store so rejected input leaves no partial
// effects, and translates store sentinels into domain errors.
type Service struct {
	store Store
	audit *audit.Publisher
}

// NewService builds a clinic service. The audit publisher may be nil, e.g. in
// unit tests that don't exercise the trail.
func NewService(store Store, auditPub *audit.Publisher) *Service {
	return &Service{store: store, audit: auditPub}
}

func (s *Service) Get(ctx context.Context, id string) (Clinic, error) {
	c, err := s.store.Get(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Clinic{}, dErrors.New(dErrors.CodeNotFound, "clinic not found")
	}
	if err != nil {
		return Clinic{}, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Clinic, error) {
	return s.store.List(ctx)
}

// UpdateSettings applies an explicit settings change. Level and status are
// never written; they are recomputed from the stored fields on every read.
func (s *Service) UpdateSettings(ctx context.Context, id string, optedIn bool, contributionPct int) (Clinic, error) {
	if contributionPct < 0 || contributionPct > 100 {
		return Clinic{}, dErrors.New(dErrors.CodeBadRequest, "contributionPct must be an integer between 0 and 100")
	}

	c, err := s.store.Update(ctx, id, optedIn, contributionPct)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Clinic{}, dErrors.New(dErrors.CodeNotFound, "clinic not found")
	}
	if err != nil {
		return Clinic{}, err
	}

	if s.audit != nil {
		s.audit.Emit(ctx, audit.Event{
			Actor:   id,
			Action:  audit.ActionSettingsUpdated,
			Subject: id,
			Detail:  fmt.Sprintf("optedIn=%t contributionPct=%d level=%d", c.OptedIn, c.ContributionPct, c.Level()),
		})
	}
	return c, nil
}

// NetworkStats describes network-wide participation shown alongside intake
// results. Participation here means opted-in, matching what the badge counts.
type NetworkStats struct {
	ParticipatingCount int
	ParticipatingPct   int
}

func (s *Service) NetworkStats(ctx context.Context) (NetworkStats, error) {
	clinics, err := s.store.List(ctx)
	if err != nil {
		return NetworkStats{}, err
	}
	if len(clinics) == 0 {
		return NetworkStats{}, nil
	}

	count := 0
	for _, c := range clinics {
		if c.OptedIn {
			count++
		}
	}
	pct := int(math.Round(float64(count) / float64(len(clinics)) * 100))
	return NetworkStats{ParticipatingCount: count, ParticipatingPct: pct}, nil
}
