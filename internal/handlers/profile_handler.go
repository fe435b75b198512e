package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sessionlog/internal/service"
	"sessionlog/internal/validation"
)

// ProfileHandler handles the profile settings API and the public profile page
type ProfileHandler struct {
	profileService *service.ProfileService
	statsService   *service.StatsService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, statsService *service.StatsService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, statsService: statsService}
}

// Get handles GET /api/profile. Users who never saved a profile get null.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	profile, err := h.profileService.GetProfile(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "get profile", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// Save handles PUT /api/profile
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	profile, err := h.profileService.SaveProfile(user.ID, req.Username, req.DisplayName, req.Bio, req.IsPublic)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			respondWithError(w, http.StatusConflict, "Username already taken", "", nil)
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "save profile", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// Public handles GET /u/{username}, the unauthenticated shared profile
// payload. Responds 404 unless the profile exists and is public.
func (h *ProfileHandler) Public(w http.ResponseWriter, r *http.Request) {
	payload, err := h.statsService.PublicProfileStats(r.PathValue("username"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "public profile", err)
		return
	}

	respondJSON(w, http.StatusOK, payload)
}
