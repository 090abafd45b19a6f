package credits

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"carelink/internal/audit"
	"carelink/internal/credits/metrics"
	"carelink/pkg/requestcontext"
)

// Service is the continuity-credit ledger. Recording is idempotent per
// (fingerprint, contributor, requester) triple: replaying the same reuse
// action any number of times yields the same totals as doing it once.
type Service struct {
	store       Store
	metrics     *metrics.Metrics
	audit       *audit.Publisher
	recentLimit int
}

func NewService(store Store, m *metrics.Metrics, auditPub *audit.Publisher, recentLimit int) *Service {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &Service{store: store, metrics: m, audit: auditPub, recentLimit: recentLimit}
}

// RecordReuse awards credits to the resolved contributors for one
// continue-care action. Contributors whose triple already exists are skipped;
// they earn nothing new and the log stays unchanged.
func (s *Service) RecordReuse(ctx context.Context, fingerprint, requesterID string, contributorIDs []string) (ReuseResult, error) {
	if len(contributorIDs) == 0 {
		return ReuseResult{Status: StatusNoContributors, Events: []Event{}}, nil
	}

	now := requestcontext.Now(ctx).UTC()
	inserted := []Event{}

	for _, contributorID := range contributorIDs {
		event := Event{
			ID:          uuid.NewString(),
			Fingerprint: fingerprint,
			From:        contributorID,
			To:          requesterID,
			Timestamp:   now,
		}
		ok, err := s.store.InsertIfAbsent(ctx, event)
		if err != nil {
			return ReuseResult{}, err
		}
		if ok {
			inserted = append(inserted, event)
		}
	}

	if len(inserted) == 0 {
		s.metrics.IncReplay()
		return ReuseResult{Status: StatusAlreadyRecorded, Events: []Event{}}, nil
	}

	s.metrics.AddAwarded(len(inserted))
	if s.audit != nil {
		s.audit.Emit(ctx, audit.Event{
			Actor:   requesterID,
			Action:  audit.ActionHistoryReused,
			Subject: fingerprint,
			Detail:  fmt.Sprintf("credited %d contributor(s)", len(inserted)),
		})
	}

	return ReuseResult{
		Status:         StatusRecorded,
		Credited:       true,
		CreditsAwarded: len(inserted),
		Events:         inserted,
	}, nil
}

// Dashboard returns derived per-clinic totals and the bounded recent view.
// Totals are recomputed from the log on every call; there is no counter to
// drift.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	totals, err := s.store.CountByContributor(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	recent, err := s.store.Recent(ctx, s.recentLimit)
	if err != nil {
		return Dashboard{}, err
	}
	if recent == nil {
		recent = []Event{}
	}
	return Dashboard{CreditsByClinic: totals, RecentEvents: recent}, nil
}
