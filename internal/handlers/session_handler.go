package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"sessionlog/internal/models"
	"sessionlog/internal/service"
	"sessionlog/internal/validation"
)

// SessionHandler handles the practice session API
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new practice session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// List handles GET /api/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	filter := models.SessionFilter{
		SongID:    r.URL.Query().Get("song_id"),
		SectionID: r.URL.Query().Get("section_id"),
		Limit:     50,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit <= 200 {
			filter.Limit = limit
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = &from
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = &to
		}
	}

	sessions, err := h.sessionService.ListSessions(user.ID, filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "list sessions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	session, err := h.sessionService.LogSession(req.toModel(user.ID, ""))
	if err != nil {
		h.respondSessionError(w, err, "create session")
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	session, err := h.sessionService.GetSession(user.ID, r.PathValue("id"))
	if err != nil {
		h.respondSessionError(w, err, "get session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// Update handles PUT /api/sessions/{id}
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	session, err := h.sessionService.UpdateSession(req.toModel(user.ID, r.PathValue("id")))
	if err != nil {
		h.respondSessionError(w, err, "update session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /api/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.sessionService.DeleteSession(user.ID, r.PathValue("id")); err != nil {
		h.respondSessionError(w, err, "delete session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *SessionHandler) respondSessionError(w http.ResponseWriter, err error, logMsg string) {
	var validationErr validation.ValidationError
	switch {
	case errors.Is(err, service.ErrSessionRecordNotFound):
		respondWithError(w, http.StatusNotFound, "Practice session not found", "", nil)
	case errors.Is(err, service.ErrSongNotFound):
		respondWithError(w, http.StatusBadRequest, "Song not found", "", nil)
	case errors.Is(err, service.ErrSectionNotFound):
		respondWithError(w, http.StatusBadRequest, "Section not found", "", nil)
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
