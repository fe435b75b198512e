package stats

import "time"

// Session is the typed record aggregations operate on. Callers map their
// storage rows into this shape, already scoped to one user, before calling
// any aggregation. Empty SongID/SectionID means the session was not logged
// against a song/section; nil TempoBPM/AccuracyRating means the field was
// not recorded.
type Session struct {
	PracticedAt     time.Time
	DurationMinutes int
	SongID          string
	SongTitle       string
	SectionID       string
	SectionName     string
	TempoBPM        *int
	AccuracyRating  *int
}
