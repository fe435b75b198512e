package models

import "time"

// Song represents a piece a user is working on
type Song struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Artist      *string   `json:"artist"`
	TargetTempo *int      `json:"target_tempo"` // BPM
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Section represents a named subdivision of a song (e.g. "Chorus")
type Section struct {
	ID          string    `json:"id"`
	SongID      string    `json:"song_id"`
	Name        string    `json:"name"`
	OrderIndex  int       `json:"order_index"`
	TargetTempo *int      `json:"target_tempo"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// SongWithSections combines a song with its sections in display order
type SongWithSections struct {
	Song
	Sections []Section `json:"sections"`
}

// SongSummary carries the song fields joined onto a practice session
type SongSummary struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Artist *string `json:"artist"`
}

// SectionSummary carries the section fields joined onto a practice session
type SectionSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
