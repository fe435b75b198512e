package handlers

import (
	"net/http"

	"sessionlog/internal/service"
)

// StatsHandler serves the dashboard and analytics payloads
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard handles GET /api/stats
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	dashboard, err := h.statsService.Dashboard(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "dashboard stats", err)
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}

// Analytics handles GET /api/analytics
func (h *StatsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	analytics, err := h.statsService.Analytics(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "analytics", err)
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}
