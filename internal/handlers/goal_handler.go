package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sessionlog/internal/service"
	"sessionlog/internal/validation"
)

// GoalHandler handles the practice goal API
type GoalHandler struct {
	goalService  *service.GoalService
	statsService *service.StatsService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *service.GoalService, statsService *service.StatsService) *GoalHandler {
	return &GoalHandler{goalService: goalService, statsService: statsService}
}

// List handles GET /api/goals
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	goals, err := h.goalService.ListActiveGoals(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "list goals", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"goals": goals})
}

// Create handles POST /api/goals. Setting a goal of a type that already has
// an active goal replaces it.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	goal, err := h.goalService.SetGoal(user.ID, req.Type, req.TargetValue)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidGoalType):
			respondWithError(w, http.StatusBadRequest, "Invalid goal type", "", nil)
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "create goal", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

// Delete handles DELETE /api/goals/{id}, deactivating the goal
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.goalService.DeactivateGoal(user.ID, r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			respondWithError(w, http.StatusNotFound, "Goal not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "deactivate goal", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Progress handles GET /api/goals/progress
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	progress, err := h.statsService.GoalProgressAll(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "goal progress", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}
