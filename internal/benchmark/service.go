package benchmark

import (
	"context"

	"carelink/internal/clinic"
	"carelink/internal/record"
)

// Reason explains why benchmarking is unavailable. Like gating denials these
// are normal responses, not errors.
type Reason string

const (
	ReasonNotOptedIn     Reason = "not_opted_in"
	ReasonLockedLevel0   Reason = "locked_level_0"
	ReasonNoParticipants Reason = "no_participants"
)

// Distribution is the share of outcome samples per response-trend category.
// Fractions sum to 1, or to 0 when there are no samples.
type Distribution struct {
	Improving float64
	Plateau   float64
	Worse     float64
}

// Result compares a clinic's own outcome-trend distribution against the
// anonymized network average.
type Result struct {
	Eligible bool
	Reason   Reason // empty when eligible
	Own      Distribution
	Network  Distribution
}

// Service aggregates outcome benchmarks. Network averages are computed per
// participant and then averaged, so no single large clinic dominates, and no
// clinic identity ever appears in the output.
type Service struct {
	clinics *clinic.Service
	records record.Store
}

func NewService(clinics *clinic.Service, records record.Store) *Service {
	return &Service{clinics: clinics, records: records}
}

// ForClinic evaluates the eligibility gate and, when it passes, computes the
// requester's own distribution and the network average across eligible other
// participants.
func (s *Service) ForClinic(ctx context.Context, clinicID string) (Result, error) {
	requester, err := s.clinics.Get(ctx, clinicID)
	if err != nil {
		return Result{}, err
	}

	if !requester.OptedIn {
		return Result{Reason: ReasonNotOptedIn}, nil
	}
	if requester.Level() == clinic.LevelIsolated {
		return Result{Reason: ReasonLockedLevel0}, nil
	}

	others, err := s.eligibleOthers(ctx, clinicID)
	if err != nil {
		return Result{}, err
	}

	own, err := s.distributionFor(ctx, clinicID)
	if err != nil {
		return Result{}, err
	}

	if len(others) == 0 {
		return Result{Reason: ReasonNoParticipants, Own: own}, nil
	}

	var network Distribution
	for _, otherID := range others {
		dist, err := s.distributionFor(ctx, otherID)
		if err != nil {
			return Result{}, err
		}
		network.Improving += dist.Improving
		network.Plateau += dist.Plateau
		network.Worse += dist.Worse
	}
	n := float64(len(others))
	network.Improving /= n
	network.Plateau /= n
	network.Worse /= n

	return Result{Eligible: true, Own: own, Network: network}, nil
}

// eligibleOthers lists clinics that count toward the network average:
// opted in, level 1 or above, at least one outcome sample, and not the
// requester itself.
func (s *Service) eligibleOthers(ctx context.Context, requesterID string) ([]string, error) {
	clinics, err := s.clinics.List(ctx)
	if err != nil {
		return nil, err
	}

	var others []string
	for _, c := range clinics {
		if c.ID == requesterID || c.Level() < clinic.LevelBasic {
			continue
		}
		records, err := s.records.ListByClinic(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if len(record.OutcomeSamples(records)) > 0 {
			others = append(others, c.ID)
		}
	}
	return others, nil
}

// distributionFor computes one clinic's fraction per trend category. A clinic
// with no samples yields the all-zero distribution; that is a valid state.
func (s *Service) distributionFor(ctx context.Context, clinicID string) (Distribution, error) {
	records, err := s.records.ListByClinic(ctx, clinicID)
	if err != nil {
		return Distribution{}, err
	}

	samples := record.OutcomeSamples(records)
	if len(samples) == 0 {
		return Distribution{}, nil
	}

	var dist Distribution
	for _, t := range samples {
		switch t {
		case record.TrendImproving:
			dist.Improving++
		case record.TrendPlateau:
			dist.Plateau++
		case record.TrendWorse:
			dist.Worse++
		}
	}
	total := float64(len(samples))
	dist.Improving /= total
	dist.Plateau /= total
	dist.Worse /= total
	return dist, nil
}
