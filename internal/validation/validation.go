// Package validation checks boundary input before it reaches storage or
// the stats core, so malformed records are rejected with a descriptive
// error instead of producing undefined aggregation results.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Field bounds shared with the storage schema
const (
	MaxSongTitleLen   = 200
	MaxArtistLen      = 200
	MaxSectionNameLen = 100
	MaxBioLen         = 500
	MaxDurationMin    = 1440
	MaxTempoBPM       = 400
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)
)

// ValidationError represents a validation error on a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateUsername checks a public-profile username against the allowed
// pattern: 3-30 lowercase letters, digits, underscores or hyphens
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ValidationError{Field: "username", Message: "must be 3-30 lowercase letters, numbers, underscores or hyphens"}
	}
	return nil
}

// ValidateDisplayName checks an optional profile display name
func ValidateDisplayName(name string) error {
	if len(name) > 100 {
		return ValidationError{Field: "display_name", Message: "must be at most 100 characters"}
	}
	return nil
}

// ValidateBio checks an optional profile bio
func ValidateBio(bio string) error {
	if len(bio) > MaxBioLen {
		return ValidationError{Field: "bio", Message: fmt.Sprintf("must be at most %d characters", MaxBioLen)}
	}
	return nil
}

// ValidateSongTitle checks a song title
func ValidateSongTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > MaxSongTitleLen {
		return ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", MaxSongTitleLen)}
	}
	return nil
}

// ValidateArtist checks an optional artist name
func ValidateArtist(artist string) error {
	if len(artist) > MaxArtistLen {
		return ValidationError{Field: "artist", Message: fmt.Sprintf("must be at most %d characters", MaxArtistLen)}
	}
	return nil
}

// ValidateSectionName checks a section name
func ValidateSectionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > MaxSectionNameLen {
		return ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxSectionNameLen)}
	}
	return nil
}

// ValidateOrderIndex checks a section order index
func ValidateOrderIndex(index int) error {
	if index < 0 {
		return ValidationError{Field: "order_index", Message: "must not be negative"}
	}
	return nil
}

// ValidateDuration checks a session duration in minutes
func ValidateDuration(minutes int) error {
	if minutes <= 0 {
		return ValidationError{Field: "duration_minutes", Message: "must be positive"}
	}
	if minutes > MaxDurationMin {
		return ValidationError{Field: "duration_minutes", Message: fmt.Sprintf("must be at most %d", MaxDurationMin)}
	}
	return nil
}

// ValidateTempo checks an optional tempo; nil is valid
func ValidateTempo(bpm *int) error {
	if bpm == nil {
		return nil
	}
	if *bpm <= 0 || *bpm > MaxTempoBPM {
		return ValidationError{Field: "tempo_bpm", Message: fmt.Sprintf("must be between 1 and %d", MaxTempoBPM)}
	}
	return nil
}

// ValidateRating checks an optional 1-5 rating; nil is valid
func ValidateRating(field string, rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 5 {
		return ValidationError{Field: field, Message: "must be between 1 and 5"}
	}
	return nil
}

// ValidatePracticedAt checks a session timestamp
func ValidatePracticedAt(practicedAt time.Time) error {
	if practicedAt.IsZero() {
		return ValidationError{Field: "practiced_at", Message: "practiced_at is required"}
	}
	return nil
}

// ValidateGoalTarget checks a goal target value; zero or negative targets
// are rejected here so they never reach progress evaluation
func ValidateGoalTarget(target int) error {
	if target <= 0 {
		return ValidationError{Field: "target_value", Message: "must be positive"}
	}
	return nil
}
