package sharing

import (
	"regexp"
	"strings"

	"carelink/internal/clinic"
	dErrors "carelink/pkg/domain-errors"
)

var (
	phoneLast4Pattern = regexp.MustCompile(`^[0-9]{4}$`)
	dobPattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IntakeRequest identifies the requesting clinic and the presented patient.
type IntakeRequest struct {
	ParticipantID string
	FullName      string
	DOB           string // YYYY-MM-DD
	PhoneLast4    string
}

// Validate rejects malformed input before any state is touched.
func (r IntakeRequest) Validate() error {
	if strings.TrimSpace(r.ParticipantID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "participantId is required")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "fullName is required")
	}
	if !dobPattern.MatchString(r.DOB) {
		return dErrors.New(dErrors.CodeBadRequest, "dob must be formatted YYYY-MM-DD")
	}
	if !phoneLast4Pattern.MatchString(r.PhoneLast4) {
		return dErrors.New(dErrors.CodeBadRequest, "phoneLast4 must be exactly 4 digits")
	}
	return nil
}

// RequesterView is the requester's own derived standing echoed back on every
// intake check.
type RequesterView struct {
	ID              string
	OptedIn         bool
	ContributionPct int
	ContextLevel    clinic.Level
	Status          string
}

// IntakeResult is the composite response of one intake check.
type IntakeResult struct {
	MatchFound  bool
	Fingerprint string
	Requester   RequesterView
	Network     clinic.NetworkStats
	Gating      GateResult
	// Summary is nil when the requester's level grants nothing or no
	// contributor clears level 1.
	Summary          *SharedSummary
	NextLevelUnlocks []string
	WhatIf           []WhatIfScenario
}
