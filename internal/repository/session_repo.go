package repository

import (
	"database/sql"
	"strings"
	"time"

	"sessionlog/internal/database"
	"sessionlog/internal/models"
	"sessionlog/internal/security"
)

// SessionRepository handles practice session database operations
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new practice session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionSelectColumns = `
	ps.id, ps.user_id, ps.song_id, ps.section_id, ps.practiced_at,
	ps.duration_minutes, ps.tempo_bpm, ps.accuracy_rating, ps.difficulty_rating,
	ps.notes, ps.created_at,
	s.id, s.title, s.artist,
	sec.id, sec.name
`

const sessionJoins = `
	LEFT JOIN songs s ON s.id = ps.song_id
	LEFT JOIN song_sections sec ON sec.id = ps.section_id
`

// Create stores a new practice session and returns it with joined details
func (r *SessionRepository) Create(session *models.PracticeSession) (*models.SessionWithDetails, error) {
	id := security.GenerateID()
	query := `
		INSERT INTO practice_sessions
			(id, user_id, song_id, section_id, practiced_at, duration_minutes,
			 tempo_bpm, accuracy_rating, difficulty_rating, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		id,
		session.UserID,
		session.SongID,
		session.SectionID,
		session.PracticedAt,
		session.DurationMinutes,
		session.TempoBPM,
		session.AccuracyRating,
		session.DifficultyRating,
		session.Notes,
	)
	if err != nil {
		return nil, err
	}

	return r.GetByID(session.UserID, id)
}

// GetByID retrieves a session owned by the user, returning nil if not found
func (r *SessionRepository) GetByID(userID, sessionID string) (*models.SessionWithDetails, error) {
	query := `
		SELECT ` + sessionSelectColumns + `
		FROM practice_sessions ps` + sessionJoins + `
		WHERE ps.id = ? AND ps.user_id = ?
	`

	session, err := r.scanSession(r.db.QueryRow(query, sessionID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// List retrieves a user's sessions matching the filter, newest first
func (r *SessionRepository) List(userID string, filter models.SessionFilter) ([]models.SessionWithDetails, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + sessionSelectColumns + `
		FROM practice_sessions ps` + sessionJoins + `
		WHERE ps.user_id = ?
	`)
	args := []interface{}{userID}

	if filter.SongID != "" {
		sb.WriteString(" AND ps.song_id = ?")
		args = append(args, filter.SongID)
	}
	if filter.SectionID != "" {
		sb.WriteString(" AND ps.section_id = ?")
		args = append(args, filter.SectionID)
	}
	if filter.From != nil {
		sb.WriteString(" AND ps.practiced_at >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		sb.WriteString(" AND ps.practiced_at <= ?")
		args = append(args, *filter.To)
	}

	sb.WriteString(" ORDER BY ps.practiced_at DESC")
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, filter.Offset)
		}
	}

	return r.querySessions(sb.String(), args...)
}

// ListSince retrieves a user's sessions practiced at or after the given time
// in chronological order. A zero time returns the full history.
func (r *SessionRepository) ListSince(userID string, since time.Time) ([]models.SessionWithDetails, error) {
	query := `
		SELECT ` + sessionSelectColumns + `
		FROM practice_sessions ps` + sessionJoins + `
		WHERE ps.user_id = ?
	`
	args := []interface{}{userID}

	if !since.IsZero() {
		query += " AND ps.practiced_at >= ?"
		args = append(args, since)
	}
	query += " ORDER BY ps.practiced_at ASC"

	return r.querySessions(query, args...)
}

// ListForSong retrieves a user's sessions for one song in chronological order
func (r *SessionRepository) ListForSong(userID, songID string) ([]models.SessionWithDetails, error) {
	query := `
		SELECT ` + sessionSelectColumns + `
		FROM practice_sessions ps` + sessionJoins + `
		WHERE ps.user_id = ? AND ps.song_id = ?
		ORDER BY ps.practiced_at ASC
	`
	return r.querySessions(query, userID, songID)
}

// Update replaces a session's fields, reporting whether a row was changed
func (r *SessionRepository) Update(session *models.PracticeSession) (bool, error) {
	query := `
		UPDATE practice_sessions
		SET song_id = ?, section_id = ?, practiced_at = ?, duration_minutes = ?,
		    tempo_bpm = ?, accuracy_rating = ?, difficulty_rating = ?, notes = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.Exec(query,
		session.SongID,
		session.SectionID,
		session.PracticedAt,
		session.DurationMinutes,
		session.TempoBPM,
		session.AccuracyRating,
		session.DifficultyRating,
		session.Notes,
		session.ID,
		session.UserID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes a session, reporting whether a row was deleted
func (r *SessionRepository) Delete(userID, sessionID string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM practice_sessions WHERE id = ? AND user_id = ?", sessionID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *SessionRepository) querySessions(query string, args ...interface{}) ([]models.SessionWithDetails, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.SessionWithDetails{}
	for rows.Next() {
		session, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *SessionRepository) scanSession(row rowScanner) (*models.SessionWithDetails, error) {
	session := &models.SessionWithDetails{}
	var songID, sectionID, notes sql.NullString
	var tempo, accuracy, difficulty sql.NullInt64
	var joinedSongID, joinedSongTitle, joinedSongArtist sql.NullString
	var joinedSectionID, joinedSectionName sql.NullString

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&songID,
		&sectionID,
		&session.PracticedAt,
		&session.DurationMinutes,
		&tempo,
		&accuracy,
		&difficulty,
		&notes,
		&session.CreatedAt,
		&joinedSongID,
		&joinedSongTitle,
		&joinedSongArtist,
		&joinedSectionID,
		&joinedSectionName,
	)
	if err != nil {
		return nil, err
	}

	session.SongID = nullStringPtr(songID)
	session.SectionID = nullStringPtr(sectionID)
	session.Notes = nullStringPtr(notes)
	session.TempoBPM = nullIntPtr(tempo)
	session.AccuracyRating = nullIntPtr(accuracy)
	session.DifficultyRating = nullIntPtr(difficulty)

	if joinedSongID.Valid {
		session.Song = &models.SongSummary{
			ID:     joinedSongID.String,
			Title:  joinedSongTitle.String,
			Artist: nullStringPtr(joinedSongArtist),
		}
	}
	if joinedSectionID.Valid {
		session.Section = &models.SectionSummary{
			ID:   joinedSectionID.String,
			Name: joinedSectionName.String,
		}
	}

	return session, nil
}
