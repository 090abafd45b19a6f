// Package handler exposes clinic settings over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carelink/internal/clinic"
	dErrors "carelink/pkg/domain-errors"
	"carelink/pkg/platform/httputil"
	"carelink/pkg/requestcontext"
)

// Service defines the clinic operations the handler needs.
type Service interface {
	List(ctx context.Context) ([]clinic.Clinic, error)
	UpdateSettings(ctx context.Context, id string, optedIn bool, contributionPct int) (clinic.Clinic, error)
}

// Handler handles clinic listing and settings updates.
type Handler struct {
	logger  *slog.Logger
	clinics Service
}

func New(clinics Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, clinics: clinics}
}

// Register registers the clinic routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/clinics", h.handleList)
	r.Post("/clinics/{clinicID}/settings", h.handleUpdateSettings)
}

// ClinicResponse is the wire form of one clinic. Level and status are derived
// at serialization time, never stored.
type ClinicResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	OptedIn         bool   `json:"optedIn"`
	ContributionPct int    `json:"contributionPct"`
	ContextLevel    int    `json:"contextLevel"`
	Status          string `json:"status"`
}

// SettingsRequest is the explicit settings update body.
type SettingsRequest struct {
	OptedIn         bool `json:"optedIn"`
	ContributionPct int  `json:"contributionPct"`
}

func toClinicResponse(c clinic.Clinic) ClinicResponse {
	level := c.Level()
	return ClinicResponse{
		ID:              c.ID,
		Name:            c.Name,
		OptedIn:         c.OptedIn,
		ContributionPct: c.ContributionPct,
		ContextLevel:    int(level),
		Status:          level.Status(),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clinics, err := h.clinics.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list clinics",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list clinics"))
		return
	}

	out := make([]ClinicResponse, 0, len(clinics))
	for _, c := range clinics {
		out = append(out, toClinicResponse(c))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clinicID := chi.URLParam(r, "clinicID")

	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid settings request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, err := h.clinics.UpdateSettings(ctx, clinicID, req.OptedIn, req.ContributionPct)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) || dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.WarnContext(ctx, "settings update rejected",
				"request_id", requestcontext.RequestID(ctx),
				"clinic_id", clinicID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update settings",
			"request_id", requestcontext.RequestID(ctx),
			"clinic_id", clinicID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to update settings"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toClinicResponse(updated))
}
