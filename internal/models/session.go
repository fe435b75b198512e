package models

import "time"

// PracticeSession represents a single logged practice session
type PracticeSession struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	SongID           *string   `json:"song_id"`
	SectionID        *string   `json:"section_id"`
	PracticedAt      time.Time `json:"practiced_at"`
	DurationMinutes  int       `json:"duration_minutes"`
	TempoBPM         *int      `json:"tempo_bpm"`
	AccuracyRating   *int      `json:"accuracy_rating"`   // 1-5 scale
	DifficultyRating *int      `json:"difficulty_rating"` // 1-5 scale
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionWithDetails includes session data plus joined song and section info
type SessionWithDetails struct {
	PracticeSession
	Song    *SongSummary    `json:"song"`
	Section *SectionSummary `json:"section"`
}

// SessionFilter narrows a session list query
type SessionFilter struct {
	SongID    string
	SectionID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
