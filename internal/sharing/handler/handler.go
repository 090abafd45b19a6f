// Package handler exposes the intake surface: the reciprocity-gated history
// check and the continue-care action that awards continuity credits.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"carelink/internal/credits"
	"carelink/internal/sharing"
	dErrors "carelink/pkg/domain-errors"
	"carelink/pkg/platform/httputil"
	"carelink/pkg/requestcontext"
)

// Service defines the intake operations the handler needs.
type Service interface {
	IntakeCheck(ctx context.Context, req sharing.IntakeRequest) (sharing.IntakeResult, error)
	CreditableContributors(ctx context.Context, req sharing.IntakeRequest) (fingerprint string, contributorIDs []string, err error)
}

// Ledger records continuity credits for continue-care actions.
type Ledger interface {
	RecordReuse(ctx context.Context, fingerprint, requesterID string, contributorIDs []string) (credits.ReuseResult, error)
}

// Handler handles intake-related endpoints.
type Handler struct {
	logger  *slog.Logger
	intake  Service
	credits Ledger
}

func New(intake Service, ledger Ledger, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, intake: intake, credits: ledger}
}

// Register registers the intake routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/intake/check", h.handleCheck)
	r.Post("/intake/continue-care", h.handleContinueCare)
}

// IntakeRequest is the wire form of a patient presentation.
type IntakeRequest struct {
	ParticipantID string `json:"participantId"`
	FullName      string `json:"fullName"`
	DOB           string `json:"dob"`
	PhoneLast4    string `json:"phoneLast4"`
}

func (r IntakeRequest) toDomain() sharing.IntakeRequest {
	return sharing.IntakeRequest{
		ParticipantID: r.ParticipantID,
		FullName:      r.FullName,
		DOB:           r.DOB,
		PhoneLast4:    r.PhoneLast4,
	}
}

// CheckResponse is the composite intake-check payload.
type CheckResponse struct {
	MatchFound            bool                 `json:"matchFound"`
	Fingerprint           string               `json:"fingerprint"`
	RequestingParticipant RequesterResponse    `json:"requestingParticipant"`
	NetworkStats          NetworkStatsResponse `json:"networkStats"`
	Gating                GatingResponse       `json:"gating"`
	SharedSummary         *SummaryResponse     `json:"sharedSummary"`
	LockedPreview         LockedPreview        `json:"lockedPreview"`
	WhatIf                []WhatIfResponse     `json:"whatIf"`
}

type RequesterResponse struct {
	ID              string `json:"id"`
	OptedIn         bool   `json:"optedIn"`
	ContributionPct int    `json:"contributionPct"`
	ContextLevel    int    `json:"contextLevel"`
	Status          string `json:"status"`
}

type NetworkStatsResponse struct {
	ParticipatingCount int `json:"participatingCount"`
	ParticipatingPct   int `json:"participatingPct"`
}

type GatingResponse struct {
	ContributingCount int                   `json:"contributingCount"`
	CappedCount       int                   `json:"cappedCount"`
	Contributors      []ContributorResponse `json:"contributors"`
	Reason            string                `json:"reason"`
}

type ContributorResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ContributorLevel int    `json:"contributorLevel"`
	VisibleLevel     int    `json:"visibleLevel"`
	IsCapped         bool   `json:"isCapped"`
	Status           string `json:"status"`
}

type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SummaryResponse flattens the leveled summary. Higher-level fields are simply
// absent when no contributor's visible level grants them.
type SummaryResponse struct {
	Conditions               []string            `json:"conditions"`
	DateRanges               []DateRangeResponse `json:"dateRanges"`
	ContributingClinicsCount int                 `json:"contributingClinicsCount"`
	Interventions            []string            `json:"interventions,omitempty"`
	ResponseTrend            string              `json:"responseTrend,omitempty"`
	RedFlags                 []string            `json:"redFlags,omitempty"`
	Timeline                 []string            `json:"timeline,omitempty"`
	LastSeenDate             string              `json:"lastSeenDate,omitempty"`
}

type LockedPreview struct {
	NextLevelUnlocks []string `json:"nextLevelUnlocks"`
}

type WhatIfResponse struct {
	TargetPct      int      `json:"targetPct"`
	TargetLevel    int      `json:"targetLevel"`
	Unlocks        []string `json:"unlocks"`
	IncreaseNeeded int      `json:"increaseNeeded"`
}

// ContinueCareResponse reports the outcome of one continue-care action.
type ContinueCareResponse struct {
	Status         string                `json:"status"`
	Credited       bool                  `json:"credited"`
	CreditsAwarded int                   `json:"creditsAwarded"`
	Events         []CreditEventResponse `json:"events"`
}

type CreditEventResponse struct {
	PatientID string `json:"patientId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp string `json:"timestamp"`
}

func toCheckResponse(result sharing.IntakeResult) CheckResponse {
	resp := CheckResponse{
		MatchFound:  result.MatchFound,
		Fingerprint: result.Fingerprint,
		RequestingParticipant: RequesterResponse{
			ID:              result.Requester.ID,
			OptedIn:         result.Requester.OptedIn,
			ContributionPct: result.Requester.ContributionPct,
			ContextLevel:    int(result.Requester.ContextLevel),
			Status:          result.Requester.Status,
		},
		NetworkStats: NetworkStatsResponse{
			ParticipatingCount: result.Network.ParticipatingCount,
			ParticipatingPct:   result.Network.ParticipatingPct,
		},
		Gating: GatingResponse{
			ContributingCount: result.Gating.ContributingCount,
			CappedCount:       result.Gating.CappedCount,
			Contributors:      make([]ContributorResponse, 0, len(result.Gating.Contributors)),
			Reason:            string(result.Gating.Reason),
		},
		LockedPreview: LockedPreview{NextLevelUnlocks: result.NextLevelUnlocks},
		WhatIf:        make([]WhatIfResponse, 0, len(result.WhatIf)),
	}

	for _, c := range result.Gating.Contributors {
		resp.Gating.Contributors = append(resp.Gating.Contributors, ContributorResponse{
			ID:               c.ID,
			Name:             c.Name,
			ContributorLevel: int(c.ContributorLevel),
			VisibleLevel:     int(c.VisibleLevel),
			IsCapped:         c.IsCapped,
			Status:           c.Status,
		})
	}

	for _, s := range result.WhatIf {
		resp.WhatIf = append(resp.WhatIf, WhatIfResponse{
			TargetPct:      s.TargetPct,
			TargetLevel:    int(s.TargetLevel),
			Unlocks:        s.Unlocks,
			IncreaseNeeded: s.IncreaseNeeded,
		})
	}

	resp.SharedSummary = toSummaryResponse(result.Summary)
	return resp
}

func toSummaryResponse(summary *sharing.SharedSummary) *SummaryResponse {
	if summary == nil {
		return nil
	}

	resp := &SummaryResponse{
		Conditions:               summary.Conditions,
		DateRanges:               make([]DateRangeResponse, 0, len(summary.DateRanges)),
		ContributingClinicsCount: summary.ContributingClinicsCount,
	}
	for _, dr := range summary.DateRanges {
		resp.DateRanges = append(resp.DateRanges, DateRangeResponse{Start: dr.Start, End: dr.End})
	}
	if summary.LevelTwo != nil {
		resp.Interventions = summary.LevelTwo.Interventions
		resp.ResponseTrend = string(summary.LevelTwo.ResponseTrend)
	}
	if summary.LevelThree != nil {
		resp.RedFlags = summary.LevelThree.RedFlags
		resp.Timeline = summary.LevelThree.Timeline
		resp.LastSeenDate = summary.LevelThree.LastSeenDate
	}
	return resp
}

func (h *Handler) decodeIntake(w http.ResponseWriter, r *http.Request) (sharing.IntakeRequest, bool) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "invalid intake request",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return sharing.IntakeRequest{}, false
	}
	return req.toDomain(), true
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeIntake(w, r)
	if !ok {
		return
	}

	result, err := h.intake.IntakeCheck(ctx, req)
	if err != nil {
		h.writeIntakeError(ctx, w, "intake check failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCheckResponse(result))
}

func (h *Handler) handleContinueCare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeIntake(w, r)
	if !ok {
		return
	}

	fingerprint, contributorIDs, err := h.intake.CreditableContributors(ctx, req)
	if err != nil {
		h.writeIntakeError(ctx, w, "contributor resolution failed", err)
		return
	}

	result, err := h.credits.RecordReuse(ctx, fingerprint, req.ParticipantID, contributorIDs)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record reuse",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to record continue-care"))
		return
	}

	resp := ContinueCareResponse{
		Status:         string(result.Status),
		Credited:       result.Credited,
		CreditsAwarded: result.CreditsAwarded,
		Events:         make([]CreditEventResponse, 0, len(result.Events)),
	}
	for _, e := range result.Events {
		resp.Events = append(resp.Events, CreditEventResponse{
			PatientID: e.Fingerprint,
			From:      e.From,
			To:        e.To,
			Timestamp: e.Timestamp.Format(time.RFC3339),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeIntakeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.Is(err, dErrors.CodeBadRequest) || dErrors.Is(err, dErrors.CodeNotFound) {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
}
