package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sessionlog/internal/service"
	"sessionlog/internal/validation"
)

// SongHandler handles the song and section API
type SongHandler struct {
	songService  *service.SongService
	statsService *service.StatsService
}

// NewSongHandler creates a new song handler
func NewSongHandler(songService *service.SongService, statsService *service.StatsService) *SongHandler {
	return &SongHandler{songService: songService, statsService: statsService}
}

// List handles GET /api/songs
func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	songs, err := h.songService.ListSongs(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "list songs", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"songs": songs})
}

// Create handles POST /api/songs
func (h *SongHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	song, err := h.songService.CreateSong(user.ID, req.Title, req.Artist, req.TargetTempo)
	if err != nil {
		h.respondSongError(w, err, "create song")
		return
	}

	respondJSON(w, http.StatusCreated, song)
}

// Get handles GET /api/songs/{id}
func (h *SongHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	song, err := h.songService.GetSong(user.ID, r.PathValue("id"))
	if err != nil {
		h.respondSongError(w, err, "get song")
		return
	}

	respondJSON(w, http.StatusOK, song)
}

// Update handles PUT /api/songs/{id}
func (h *SongHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	song, err := h.songService.UpdateSong(user.ID, r.PathValue("id"), req.Title, req.Artist, req.TargetTempo)
	if err != nil {
		h.respondSongError(w, err, "update song")
		return
	}

	respondJSON(w, http.StatusOK, song)
}

// Delete handles DELETE /api/songs/{id}
func (h *SongHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.songService.DeleteSong(user.ID, r.PathValue("id")); err != nil {
		h.respondSongError(w, err, "delete song")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Stats handles GET /api/songs/{id}/stats
func (h *SongHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	songStats, err := h.statsService.SongStats(user.ID, r.PathValue("id"))
	if err != nil {
		h.respondSongError(w, err, "song stats")
		return
	}

	respondJSON(w, http.StatusOK, songStats)
}

// CreateSection handles POST /api/songs/{id}/sections
func (h *SongHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	section, err := h.songService.AddSection(user.ID, r.PathValue("id"), req.Name, req.OrderIndex, req.TargetTempo, req.Notes)
	if err != nil {
		h.respondSongError(w, err, "create section")
		return
	}

	respondJSON(w, http.StatusCreated, section)
}

// UpdateSection handles PUT /api/sections/{id}
func (h *SongHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSONBody, "", nil)
		return
	}

	section, err := h.songService.UpdateSection(user.ID, r.PathValue("id"), req.Name, req.OrderIndex, req.TargetTempo, req.Notes)
	if err != nil {
		h.respondSongError(w, err, "update section")
		return
	}

	respondJSON(w, http.StatusOK, section)
}

// DeleteSection handles DELETE /api/sections/{id}
func (h *SongHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.songService.DeleteSection(user.ID, r.PathValue("id")); err != nil {
		h.respondSongError(w, err, "delete section")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *SongHandler) respondSongError(w http.ResponseWriter, err error, logMsg string) {
	var validationErr validation.ValidationError
	switch {
	case errors.Is(err, service.ErrSongNotFound):
		respondWithError(w, http.StatusNotFound, "Song not found", "", nil)
	case errors.Is(err, service.ErrSectionNotFound):
		respondWithError(w, http.StatusNotFound, "Section not found", "", nil)
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
