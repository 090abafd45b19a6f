// Package handler exposes the continuity-credit dashboard.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"carelink/internal/credits"
	dErrors "carelink/pkg/domain-errors"
	"carelink/pkg/platform/httputil"
	"carelink/pkg/requestcontext"
)

// Service defines the ledger reads the handler needs.
type Service interface {
	Dashboard(ctx context.Context) (credits.Dashboard, error)
}

// Handler handles the credits dashboard endpoint.
type Handler struct {
	logger *slog.Logger
	ledger Service
}

func New(ledger Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, ledger: ledger}
}

// Register registers the credits routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/credits/dashboard", h.handleDashboard)
}

// DashboardResponse pairs per-clinic totals with the recent-events view.
type DashboardResponse struct {
	CreditsByParticipant map[string]int  `json:"creditsByParticipant"`
	RecentEvents         []EventResponse `json:"recentEvents"`
}

type EventResponse struct {
	PatientID string `json:"patientId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dashboard, err := h.ledger.Dashboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load credits dashboard",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load dashboard"))
		return
	}

	resp := DashboardResponse{
		CreditsByParticipant: dashboard.CreditsByClinic,
		RecentEvents:         make([]EventResponse, 0, len(dashboard.RecentEvents)),
	}
	if resp.CreditsByParticipant == nil {
		resp.CreditsByParticipant = map[string]int{}
	}
	for _, e := range dashboard.RecentEvents {
		resp.RecentEvents = append(resp.RecentEvents, EventResponse{
			PatientID: e.Fingerprint,
			From:      e.From,
			To:        e.To,
			Timestamp: e.Timestamp.Format(time.RFC3339),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
