package sharing

import (
	"carelink/internal/clinic"
	"carelink/internal/record"
)

// GateReason explains the aggregate gating outcome. Denials are normal
// responses, not errors.
type GateReason string

const (
	ReasonNotOptedIn     GateReason = "not_opted_in"
	ReasonLevelZero      GateReason = "level_0"
	ReasonNoContributors GateReason = "no_contributors"
	ReasonOK             GateReason = "ok"
)

// Contributor pairs an opted-in clinic with its records for one patient.
type Contributor struct {
	Clinic  clinic.Clinic
	Records []record.PatientRecord
}

// ContributorView is what a requester may learn about a contributor: identity,
// levels and the capped flag. Opt-in state of other clinics is never exposed
// (opted-out clinics simply do not appear).
type ContributorView struct {
	ID               string
	Name             string
	ContributorLevel clinic.Level
	VisibleLevel     clinic.Level
	IsCapped         bool
	Status           string
}

// GateResult carries the per-contributor visible levels and the aggregate
// gating statistics for one intake check.
type GateResult struct {
	Contributors      []ContributorView
	ContributingCount int // contributors with visible level > 0
	CappedCount       int // contributors holding more detail than the requester may see
	Reason            GateReason
}

// Gate applies the reciprocity rule between a requester and each contributor:
// visibleLevel = min(requester, contributor), and a contributor is capped when
// it had more to offer than the requester's own level permits. Contributors
// must already be filtered to opted-in clinics and ordered by id.
func Gate(requester clinic.Clinic, contributors []Contributor) GateResult {
	requesterLevel := requester.Level()

	result := GateResult{Contributors: make([]ContributorView, 0, len(contributors))}
	anyAtLevelOne := false

	for _, contrib := range contributors {
		contributorLevel := contrib.Clinic.Level()
		visible := clinic.MinLevel(requesterLevel, contributorLevel)
		capped := visible < contributorLevel

		if contributorLevel >= clinic.LevelBasic {
			anyAtLevelOne = true
		}
		if visible > clinic.LevelIsolated {
			result.ContributingCount++
		}
		if capped {
			result.CappedCount++
		}

		result.Contributors = append(result.Contributors, ContributorView{
			ID:               contrib.Clinic.ID,
			Name:             contrib.Clinic.Name,
			ContributorLevel: contributorLevel,
			VisibleLevel:     visible,
			IsCapped:         capped,
			Status:           contributorLevel.Status(),
		})
	}

	switch {
	case !requester.OptedIn:
		result.Reason = ReasonNotOptedIn
	case requesterLevel == clinic.LevelIsolated:
		result.Reason = ReasonLevelZero
	case !anyAtLevelOne:
		result.Reason = ReasonNoContributors
	default:
		result.Reason = ReasonOK
	}

	return result
}
