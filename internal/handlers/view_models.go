package handlers

import (
	"time"

	"sessionlog/internal/models"
)

// Request bodies

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordCheckRequest struct {
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type songRequest struct {
	Title       string  `json:"title"`
	Artist      *string `json:"artist"`
	TargetTempo *int    `json:"target_tempo"`
}

type sectionRequest struct {
	Name        string  `json:"name"`
	OrderIndex  int     `json:"order_index"`
	TargetTempo *int    `json:"target_tempo"`
	Notes       *string `json:"notes"`
}

type sessionRequest struct {
	SongID           *string   `json:"song_id"`
	SectionID        *string   `json:"section_id"`
	PracticedAt      time.Time `json:"practiced_at"`
	DurationMinutes  int       `json:"duration_minutes"`
	TempoBPM         *int      `json:"tempo_bpm"`
	AccuracyRating   *int      `json:"accuracy_rating"`
	DifficultyRating *int      `json:"difficulty_rating"`
	Notes            *string   `json:"notes"`
}

func (req *sessionRequest) toModel(userID, id string) *models.PracticeSession {
	return &models.PracticeSession{
		ID:               id,
		UserID:           userID,
		SongID:           req.SongID,
		SectionID:        req.SectionID,
		PracticedAt:      req.PracticedAt,
		DurationMinutes:  req.DurationMinutes,
		TempoBPM:         req.TempoBPM,
		AccuracyRating:   req.AccuracyRating,
		DifficultyRating: req.DifficultyRating,
		Notes:            req.Notes,
	}
}

type goalRequest struct {
	Type        string `json:"type"`
	TargetValue int    `json:"target_value"`
}

type profileRequest struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	IsPublic    bool    `json:"is_public"`
}

// Response bodies

type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	User      userView `json:"user"`
	CSRFToken string   `json:"csrfToken"`
}

type passwordCheckResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Strength string   `json:"strength"`
}

func toUserView(user *models.User) userView {
	return userView{ID: user.ID, Email: user.Email, Name: user.Name}
}
