package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"carelink/internal/clinic"
	"carelink/internal/credits"
	"carelink/internal/sharing"
	"carelink/internal/sharing/handler/mocks"
	dErrors "carelink/pkg/domain-errors"
	"carelink/pkg/testutil"
)

//go:generate mockgen -destination=mocks/mock_handler.go -package=mocks carelink/internal/sharing/handler Service,Ledger
type IntakeHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *IntakeHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestIntakeHandlerSuite(t *testing.T) {
	suite.Run(t, new(IntakeHandlerSuite))
}

func newTestHandler(t *testing.T) (chi.Router, *mocks.MockService, *mocks.MockLedger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	mockLedger := mocks.NewMockLedger(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, mockLedger, logger).Register(r)
	return r, mockService, mockLedger
}

func intakeBody() IntakeRequest {
	return IntakeRequest{
		ParticipantID: "A",
		FullName:      "John Doe",
		DOB:           "1990-01-15",
		PhoneLast4:    "1234",
	}
}

func (s *IntakeHandlerSuite) TestHandleCheck() {
	router, mockService, _ := newTestHandler(s.T())

	mockService.EXPECT().IntakeCheck(gomock.Any(), sharing.IntakeRequest{
		ParticipantID: "A", FullName: "John Doe", DOB: "1990-01-15", PhoneLast4: "1234",
	}).Return(sharing.IntakeResult{
		MatchFound:  true,
		Fingerprint: "abc123",
		Requester: sharing.RequesterView{
			ID: "A", OptedIn: true, ContributionPct: 85,
			ContextLevel: clinic.LevelTrusted, Status: "Trusted Contributor",
		},
		Network: clinic.NetworkStats{ParticipatingCount: 2, ParticipatingPct: 67},
		Gating: sharing.GateResult{
			Contributors: []sharing.ContributorView{{
				ID: "C", Name: "Clinic C",
				ContributorLevel: clinic.LevelBasic, VisibleLevel: clinic.LevelBasic,
				IsCapped: false, Status: "Basic",
			}},
			ContributingCount: 1,
			Reason:            sharing.ReasonOK,
		},
		Summary: &sharing.SharedSummary{
			Conditions:               []string{"Hypertension"},
			DateRanges:               []sharing.DateRange{{Start: "2023-01-15", End: "2023-06-20"}},
			ContributingClinicsCount: 1,
		},
		NextLevelUnlocks: []string{},
		WhatIf:           []sharing.WhatIfScenario{},
	}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/check", intakeBody())
	rr := testutil.DoRequest(router, req)

	assert.Equal(s.T(), http.StatusOK, rr.Code)
	var resp CheckResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	assert.True(s.T(), resp.MatchFound)
	assert.Equal(s.T(), "abc123", resp.Fingerprint)
	assert.Equal(s.T(), 3, resp.RequestingParticipant.ContextLevel)
	assert.Equal(s.T(), "ok", resp.Gating.Reason)
	require.Len(s.T(), resp.Gating.Contributors, 1)
	assert.Equal(s.T(), "C", resp.Gating.Contributors[0].ID)
	require.NotNil(s.T(), resp.SharedSummary)
	assert.Equal(s.T(), []string{"Hypertension"}, resp.SharedSummary.Conditions)
	assert.Empty(s.T(), resp.SharedSummary.Interventions, "level-2 block absent from a level-1 summary")
}

func (s *IntakeHandlerSuite) TestHandleCheck_NullSummaryOnWire() {
	router, mockService, _ := newTestHandler(s.T())

	mockService.EXPECT().IntakeCheck(gomock.Any(), gomock.Any()).Return(sharing.IntakeResult{
		MatchFound: true,
		Gating:     sharing.GateResult{Reason: sharing.ReasonNotOptedIn},
	}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/check", intakeBody())
	rr := testutil.DoRequest(router, req)

	assert.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), `"sharedSummary":null`,
		"a gated check still reports the summary key explicitly")
}

func (s *IntakeHandlerSuite) TestHandleCheck_ValidationError() {
	router, mockService, _ := newTestHandler(s.T())

	mockService.EXPECT().IntakeCheck(gomock.Any(), gomock.Any()).
		Return(sharing.IntakeResult{}, dErrors.New(dErrors.CodeBadRequest, "phoneLast4 must be exactly 4 digits"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/check", intakeBody())
	rr := testutil.DoRequest(router, req)

	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
	var resp map[string]string
	testutil.DecodeJSON(s.T(), rr, &resp)
	assert.Equal(s.T(), "bad_request", resp["error"])
	assert.Equal(s.T(), "phoneLast4 must be exactly 4 digits", resp["error_description"])
}

func (s *IntakeHandlerSuite) TestHandleCheck_MalformedBody() {
	router, _, _ := newTestHandler(s.T())

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/check", "not an object")
	rr := testutil.DoRequest(router, req)

	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}

func (s *IntakeHandlerSuite) TestHandleCheck_InternalErrorHidesDetail() {
	router, mockService, _ := newTestHandler(s.T())

	mockService.EXPECT().IntakeCheck(gomock.Any(), gomock.Any()).
		Return(sharing.IntakeResult{}, assert.AnError)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/check", intakeBody())
	rr := testutil.DoRequest(router, req)

	assert.Equal(s.T(), http.StatusInternalServerError, rr.Code)
	assert.NotContains(s.T(), rr.Body.String(), "error_description")
}

func (s *IntakeHandlerSuite) TestHandleContinueCare() {
	router, mockService, mockLedger := newTestHandler(s.T())
	ts := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	mockService.EXPECT().CreditableContributors(gomock.Any(), gomock.Any()).
		Return("abc123", []string{"A", "C"}, nil)
	mockLedger.EXPECT().RecordReuse(gomock.Any(), "abc123", "B", []string{"A", "C"}).
		Return(credits.ReuseResult{
			Status:         credits.StatusRecorded,
			Credited:       true,
			CreditsAwarded: 2,
			Events: []credits.Event{
				{ID: "e1", Fingerprint: "abc123", From: "A", To: "B", Timestamp: ts},
				{ID: "e2", Fingerprint: "abc123", From: "C", To: "B", Timestamp: ts},
			},
		}, nil)

	body := intakeBody()
	body.ParticipantID = "B"
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/continue-care", body)
	rr := testutil.DoRequest(router, req)

	assert.Equal(s.T(), http.StatusOK, rr.Code)
	var resp ContinueCareResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	assert.Equal(s.T(), "recorded", resp.Status)
	assert.True(s.T(), resp.Credited)
	assert.Equal(s.T(), 2, resp.CreditsAwarded)
	require.Len(s.T(), resp.Events, 2)
	assert.Equal(s.T(), "abc123", resp.Events[0].PatientID)
	assert.Equal(s.T(), "2026-08-25T10:00:00Z", resp.Events[0].Timestamp)
}

func (s *IntakeHandlerSuite) TestHandleContinueCare_AlreadyRecorded() {
	router, mockService, mockLedger := newTestHandler(s.T())

	mockService.EXPECT().CreditableContributors(gomock.Any(), gomock.Any()).
		Return("abc123", []string{"A"}, nil)
	mockLedger.EXPECT().RecordReuse(gomock.Any(), "abc123", "A", []string{"A"}).
		Return(credits.ReuseResult{Status: credits.StatusAlreadyRecorded, Events: []credits.Event{}}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/continue-care", intakeBody())
	rr := testutil.DoRequest(router, req)

	assert.Equal(s.T(), http.StatusOK, rr.Code)
	var resp ContinueCareResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	assert.Equal(s.T(), "already_recorded", resp.Status)
	assert.False(s.T(), resp.Credited)
	assert.Empty(s.T(), resp.Events)
}

func (s *IntakeHandlerSuite) TestHandleContinueCare_UnknownRequester() {
	router, mockService, _ := newTestHandler(s.T())

	mockService.EXPECT().CreditableContributors(gomock.Any(), gomock.Any()).
		Return("", nil, dErrors.New(dErrors.CodeNotFound, "clinic not found"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/continue-care", intakeBody())
	rr := testutil.DoRequest(router, req)

	assert.Equal(s.T(), http.StatusNotFound, rr.Code)
}
