// Package httpapi assembles the public HTTP surface. It is a thin layer: the
// shared middleware chain, the health and metrics endpoints, and the mounted
// domain handlers. Business logic stays in the domain services.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	benchmarkhandler "carelink/internal/benchmark/handler"
	clinichandler "carelink/internal/clinic/handler"
	creditshandler "carelink/internal/credits/handler"
	"carelink/internal/platform/metrics"
	"carelink/internal/platform/middleware"
	sharinghandler "carelink/internal/sharing/handler"
	"carelink/pkg/platform/httputil"
)

const requestTimeout = 30 * time.Second

// Handlers groups the per-domain handlers mounted on the router.
type Handlers struct {
	Clinics   *clinichandler.Handler
	Intake    *sharinghandler.Handler
	Credits   *creditshandler.Handler
	Benchmark *benchmarkhandler.Handler
}

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(h Handlers, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(m))

	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Clinics.Register(r)
	h.Intake.Register(r)
	h.Credits.Register(r)
	h.Benchmark.Register(r)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
