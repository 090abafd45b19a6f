package sharing

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"carelink/internal/clinic"
	"carelink/internal/record"
	"carelink/internal/sharing/metrics"
)

// Service orchestrates intake checks: fingerprint resolution, the reciprocity
// gate, the merged summary and the what-if scenarios. It is stateless per
// request; all shared state lives behind the clinic and record stores.
type Service struct {
	clinics *clinic.Service
	records record.Store
	metrics *metrics.Metrics
}

func NewService(clinics *clinic.Service, records record.Store, m *metrics.Metrics) *Service {
	return &Service{clinics: clinics, records: records, metrics: m}
}

// IntakeCheck resolves the presented patient and assembles the composite
// intake response for the requesting clinic.
func (s *Service) IntakeCheck(ctx context.Context, req IntakeRequest) (IntakeResult, error) {
	if err := req.Validate(); err != nil {
		return IntakeResult{}, err
	}
	start := time.Now()

	fingerprint := record.Fingerprint(req.FullName, req.DOB, req.PhoneLast4)

	// Requester lookup, network stats and record resolution are independent
	// reads over the snapshot; gather them concurrently.
	var (
		requester clinic.Clinic
		network   clinic.NetworkStats
		records   []record.PatientRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requester, err = s.clinics.Get(gctx, req.ParticipantID)
		return err
	})
	g.Go(func() error {
		var err error
		network, err = s.clinics.NetworkStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.records.FindByFingerprint(gctx, fingerprint)
		return err
	})
	if err := g.Wait(); err != nil {
		return IntakeResult{}, err
	}

	// A match exists whenever any clinic holds a record for the fingerprint.
	// Knowing that is never gated; the content below is.
	matchFound := len(records) > 0

	contributors, recordsByClinic, err := s.resolveContributors(ctx, records)
	if err != nil {
		return IntakeResult{}, err
	}

	gate := Gate(requester, contributors)

	var summary *SharedSummary
	if matchFound && requester.Level() > clinic.LevelIsolated {
		summary = BuildSharedSummary(gate, recordsByClinic)
	}

	requesterLevel := requester.Level()
	result := IntakeResult{
		MatchFound:  matchFound,
		Fingerprint: fingerprint,
		Requester: RequesterView{
			ID:              requester.ID,
			OptedIn:         requester.OptedIn,
			ContributionPct: requester.ContributionPct,
			ContextLevel:    requesterLevel,
			Status:          requesterLevel.Status(),
		},
		Network:          network,
		Gating:           gate,
		Summary:          summary,
		NextLevelUnlocks: NextLevelUnlocks(requesterLevel),
		WhatIf:           WhatIf(requester.OptedIn, requester.ContributionPct),
	}

	s.metrics.ObserveCheck(string(gate.Reason), matchFound, time.Since(start))
	return result, nil
}

// resolveContributors groups the matched records by owning clinic and keeps
// only opted-in owners. Opted-out clinics never surface as contributors, so
// their participation state is not revealed. The requester's own records stay
// in the set; it always sees its own data at its own level.
func (s *Service) resolveContributors(ctx context.Context, records []record.PatientRecord) ([]Contributor, map[string][]record.PatientRecord, error) {
	byClinic := make(map[string][]record.PatientRecord)
	var order []string
	for _, r := range records {
		if _, seen := byClinic[r.ClinicID]; !seen {
			order = append(order, r.ClinicID)
		}
		byClinic[r.ClinicID] = append(byClinic[r.ClinicID], r)
	}

	var contributors []Contributor
	visible := make(map[string][]record.PatientRecord, len(byClinic))
	for _, clinicID := range order {
		owner, err := s.clinics.Get(ctx, clinicID)
		if err != nil {
			// A record owned by an unknown clinic is a data inconsistency;
			// skip it rather than failing the whole check.
			continue
		}
		if !owner.OptedIn {
			continue
		}
		contributors = append(contributors, Contributor{Clinic: owner, Records: byClinic[clinicID]})
		visible[clinicID] = byClinic[clinicID]
	}
	return contributors, visible, nil
}

// CreditableContributors re-resolves the contributor set for a continue-care
// action: opted-in clinics at level 1 or above holding records for the
// patient, excluding the requester itself. A clinic never credits itself for
// reusing its own history.
func (s *Service) CreditableContributors(ctx context.Context, req IntakeRequest) (fingerprint string, contributorIDs []string, err error) {
	if err := req.Validate(); err != nil {
		return "", nil, err
	}
	// Requester must exist even though its level does not gate crediting.
	if _, err := s.clinics.Get(ctx, req.ParticipantID); err != nil {
		return "", nil, err
	}

	fingerprint = record.Fingerprint(req.FullName, req.DOB, req.PhoneLast4)
	records, err := s.records.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		return "", nil, err
	}

	contributors, _, err := s.resolveContributors(ctx, records)
	if err != nil {
		return "", nil, err
	}

	for _, contrib := range contributors {
		if contrib.Clinic.ID == req.ParticipantID {
			continue
		}
		if contrib.Clinic.Level() >= clinic.LevelBasic {
			contributorIDs = append(contributorIDs, contrib.Clinic.ID)
		}
	}
	return fingerprint, contributorIDs, nil
}
