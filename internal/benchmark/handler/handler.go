// Package handler exposes the anonymized outcome benchmark.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carelink/internal/benchmark"
	dErrors "carelink/pkg/domain-errors"
	"carelink/pkg/platform/httputil"
	"carelink/pkg/requestcontext"
)

// Service defines the benchmark computation the handler needs.
type Service interface {
	ForClinic(ctx context.Context, clinicID string) (benchmark.Result, error)
}

// Handler handles the benchmark endpoint.
type Handler struct {
	logger    *slog.Logger
	benchmark Service
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, benchmark: svc}
}

// Register registers the benchmark routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/clinics/{clinicID}/benchmark", h.handleBenchmark)
}

// BenchmarkResponse carries the eligibility outcome and both distributions.
// Reason is present only on ineligible responses.
type BenchmarkResponse struct {
	Eligible        bool                 `json:"eligible"`
	Reason          string               `json:"reason,omitempty"`
	OwnDistribution DistributionResponse `json:"ownDistribution"`
	NetworkAverage  DistributionResponse `json:"networkAverage"`
}

type DistributionResponse struct {
	Improving float64 `json:"improving"`
	Plateau   float64 `json:"plateau"`
	Worse     float64 `json:"worse"`
}

func (h *Handler) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clinicID := chi.URLParam(r, "clinicID")

	result, err := h.benchmark.ForClinic(ctx, clinicID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.WarnContext(ctx, "benchmark for unknown clinic",
				"request_id", requestcontext.RequestID(ctx),
				"clinic_id", clinicID,
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to compute benchmark",
			"request_id", requestcontext.RequestID(ctx),
			"clinic_id", clinicID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to compute benchmark"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, BenchmarkResponse{
		Eligible:        result.Eligible,
		Reason:          string(result.Reason),
		OwnDistribution: DistributionResponse(result.Own),
		NetworkAverage:  DistributionResponse(result.Network),
	})
}
