package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/credits"
	"carelink/pkg/testutil"
)

func newTestRouter(t *testing.T) (chi.Router, *credits.Service) {
	t.Helper()
	svc := credits.NewService(credits.NewInMemoryStore(), nil, nil, 5)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r, svc
}

func TestHandleDashboard_Empty(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/credits/dashboard"))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp DashboardResponse
	testutil.DecodeJSON(t, rr, &resp)
	assert.NotNil(t, resp.CreditsByParticipant)
	assert.Empty(t, resp.CreditsByParticipant)
	assert.Empty(t, resp.RecentEvents)
	assert.Contains(t, rr.Body.String(), `"creditsByParticipant":{}`,
		"an empty ledger serializes as an empty map, not null")
}

func TestHandleDashboard(t *testing.T) {
	router, svc := newTestRouter(t)
	ctx := context.Background()

	_, err := svc.RecordReuse(ctx, "fp-1", "B", []string{"A", "C"})
	require.NoError(t, err)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/credits/dashboard"))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp DashboardResponse
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, map[string]int{"A": 1, "C": 1}, resp.CreditsByParticipant)
	require.Len(t, resp.RecentEvents, 2)
	assert.Equal(t, "fp-1", resp.RecentEvents[0].PatientID)
	assert.Equal(t, "B", resp.RecentEvents[0].To)
	assert.NotEmpty(t, resp.RecentEvents[0].Timestamp)
}
