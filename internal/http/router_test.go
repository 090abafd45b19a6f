package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/benchmark"
	benchmarkhandler "carelink/internal/benchmark/handler"
	"carelink/internal/clinic"
	clinichandler "carelink/internal/clinic/handler"
	"carelink/internal/credits"
	creditshandler "carelink/internal/credits/handler"
	platformmetrics "carelink/internal/platform/metrics"
	"carelink/internal/record"
	"carelink/internal/seed"
	"carelink/internal/sharing"
	sharinghandler "carelink/internal/sharing/handler"
	"carelink/pkg/testutil"
)

// TestRouter exercises the fully wired surface over the demo dataset. The
// router is built once; prometheus collectors register globally and must not
// be constructed per subtest.
func TestRouter(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	clinicStore := clinic.NewInMemoryStore()
	recordStore := record.NewInMemoryStore()
	require.NoError(t, seed.Demo(ctx, clinicStore, recordStore))

	clinicSvc := clinic.NewService(clinicStore, nil)
	sharingSvc := sharing.NewService(clinicSvc, recordStore, nil)
	creditSvc := credits.NewService(credits.NewInMemoryStore(), nil, nil, 5)
	benchmarkSvc := benchmark.NewService(clinicSvc, recordStore)

	router := NewRouter(Handlers{
		Clinics:   clinichandler.New(clinicSvc, logger),
		Intake:    sharinghandler.New(sharingSvc, creditSvc, logger),
		Credits:   creditshandler.New(creditSvc, logger),
		Benchmark: benchmarkhandler.New(benchmarkSvc, logger),
	}, logger, platformmetrics.New())

	t.Run("health", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
	})

	t.Run("metrics exposition", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "go_goroutines")
	})

	t.Run("request id propagates to the response", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("intake check end to end", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/intake/check", map[string]string{
			"participantId": "A",
			"fullName":      "John Doe",
			"dob":           "1990-01-15",
			"phoneLast4":    "1234",
		})
		rr := testutil.DoRequest(router, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp sharinghandler.CheckResponse
		testutil.DecodeJSON(t, rr, &resp)
		assert.True(t, resp.MatchFound)
		assert.Equal(t, "ok", resp.Gating.Reason)
		require.NotNil(t, resp.SharedSummary)
	})

	t.Run("continue care then dashboard", func(t *testing.T) {
		body := map[string]string{
			"participantId": "B",
			"fullName":      "John Doe",
			"dob":           "1990-01-15",
			"phoneLast4":    "1234",
		}

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/intake/continue-care", body))
		assert.Equal(t, http.StatusOK, rr.Code)
		var reuse sharinghandler.ContinueCareResponse
		testutil.DecodeJSON(t, rr, &reuse)
		assert.Equal(t, "recorded", reuse.Status)
		assert.Equal(t, 2, reuse.CreditsAwarded)

		rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/intake/continue-care", body))
		assert.Equal(t, http.StatusOK, rr.Code)
		testutil.DecodeJSON(t, rr, &reuse)
		assert.Equal(t, "already_recorded", reuse.Status)

		rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/credits/dashboard"))
		assert.Equal(t, http.StatusOK, rr.Code)
		var dashboard creditshandler.DashboardResponse
		testutil.DecodeJSON(t, rr, &dashboard)
		assert.Equal(t, map[string]int{"A": 1, "C": 1}, dashboard.CreditsByParticipant)
	})

	t.Run("benchmark", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/clinics/A/benchmark"))
		assert.Equal(t, http.StatusOK, rr.Code)
		var resp benchmarkhandler.BenchmarkResponse
		testutil.DecodeJSON(t, rr, &resp)
		assert.True(t, resp.Eligible)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/intake/check", map[string]string{})
		req.Header.Set("Content-Type", "text/plain")
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	})
}
