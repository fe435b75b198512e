package repository

import (
	"database/sql"

	"sessionlog/internal/database"
	"sessionlog/internal/models"
	"sessionlog/internal/security"
)

// SongRepository handles song and section database operations
type SongRepository struct {
	db *database.DB
}

// NewSongRepository creates a new song repository
func NewSongRepository(db *database.DB) *SongRepository {
	return &SongRepository{db: db}
}

// CreateSong creates a new song for a user
func (r *SongRepository) CreateSong(userID, title string, artist *string, targetTempo *int) (*models.Song, error) {
	id := security.GenerateID()
	query := `
		INSERT INTO songs (id, user_id, title, artist, target_tempo)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, id, userID, title, artist, targetTempo); err != nil {
		return nil, err
	}

	return r.GetSongByID(userID, id)
}

// GetSongByID retrieves a song owned by the user, returning nil if not found
func (r *SongRepository) GetSongByID(userID, songID string) (*models.Song, error) {
	query := `
		SELECT id, user_id, title, artist, target_tempo, created_at, updated_at
		FROM songs
		WHERE id = ? AND user_id = ?
	`

	song := &models.Song{}
	var artist sql.NullString
	var tempo sql.NullInt64
	err := r.db.QueryRow(query, songID, userID).Scan(
		&song.ID,
		&song.UserID,
		&song.Title,
		&artist,
		&tempo,
		&song.CreatedAt,
		&song.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	song.Artist = nullStringPtr(artist)
	song.TargetTempo = nullIntPtr(tempo)
	return song, nil
}

// ListSongs retrieves all songs for a user with their sections, newest first
func (r *SongRepository) ListSongs(userID string) ([]models.SongWithSections, error) {
	query := `
		SELECT id, user_id, title, artist, target_tempo, created_at, updated_at
		FROM songs
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := []models.SongWithSections{}
	for rows.Next() {
		var song models.Song
		var artist sql.NullString
		var tempo sql.NullInt64
		err := rows.Scan(
			&song.ID,
			&song.UserID,
			&song.Title,
			&artist,
			&tempo,
			&song.CreatedAt,
			&song.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		song.Artist = nullStringPtr(artist)
		song.TargetTempo = nullIntPtr(tempo)
		songs = append(songs, models.SongWithSections{Song: song, Sections: []models.Section{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range songs {
		sections, err := r.GetSectionsForSong(songs[i].ID)
		if err != nil {
			return nil, err
		}
		songs[i].Sections = sections
	}

	return songs, nil
}

// ListSongSummaries retrieves a user's newest songs as lightweight summaries
func (r *SongRepository) ListSongSummaries(userID string, limit int) ([]models.SongSummary, error) {
	query := `
		SELECT id, title, artist
		FROM songs
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.SongSummary{}
	for rows.Next() {
		var summary models.SongSummary
		var artist sql.NullString
		if err := rows.Scan(&summary.ID, &summary.Title, &artist); err != nil {
			return nil, err
		}
		summary.Artist = nullStringPtr(artist)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// GetSongWithSections retrieves a single song and its sections, returning nil
// if the song does not exist or belongs to a different user
func (r *SongRepository) GetSongWithSections(userID, songID string) (*models.SongWithSections, error) {
	song, err := r.GetSongByID(userID, songID)
	if err != nil || song == nil {
		return nil, err
	}

	sections, err := r.GetSectionsForSong(songID)
	if err != nil {
		return nil, err
	}

	return &models.SongWithSections{Song: *song, Sections: sections}, nil
}

// UpdateSong updates a song's fields, reporting whether a row was changed
func (r *SongRepository) UpdateSong(userID, songID, title string, artist *string, targetTempo *int) (bool, error) {
	query := `
		UPDATE songs
		SET title = ?, artist = ?, target_tempo = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.Exec(query, title, artist, targetTempo, songID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// DeleteSong removes a song; its sections cascade and practice sessions keep
// a null song reference
func (r *SongRepository) DeleteSong(userID, songID string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM songs WHERE id = ? AND user_id = ?", songID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// CreateSection adds a section to a song
func (r *SongRepository) CreateSection(songID, name string, orderIndex int, targetTempo *int, notes *string) (*models.Section, error) {
	id := security.GenerateID()
	query := `
		INSERT INTO song_sections (id, song_id, name, order_index, target_tempo, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, id, songID, name, orderIndex, targetTempo, notes); err != nil {
		return nil, err
	}

	return r.GetSectionByID(id)
}

// GetSectionByID retrieves a section, returning nil if not found
func (r *SongRepository) GetSectionByID(sectionID string) (*models.Section, error) {
	query := `
		SELECT id, song_id, name, order_index, target_tempo, notes, created_at
		FROM song_sections
		WHERE id = ?
	`

	section := &models.Section{}
	var tempo sql.NullInt64
	var notes sql.NullString
	err := r.db.QueryRow(query, sectionID).Scan(
		&section.ID,
		&section.SongID,
		&section.Name,
		&section.OrderIndex,
		&tempo,
		&notes,
		&section.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	section.TargetTempo = nullIntPtr(tempo)
	section.Notes = nullStringPtr(notes)
	return section, nil
}

// GetSectionsForSong retrieves a song's sections in display order
func (r *SongRepository) GetSectionsForSong(songID string) ([]models.Section, error) {
	query := `
		SELECT id, song_id, name, order_index, target_tempo, notes, created_at
		FROM song_sections
		WHERE song_id = ?
		ORDER BY order_index, created_at
	`

	rows, err := r.db.Query(query, songID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []models.Section{}
	for rows.Next() {
		var section models.Section
		var tempo sql.NullInt64
		var notes sql.NullString
		err := rows.Scan(
			&section.ID,
			&section.SongID,
			&section.Name,
			&section.OrderIndex,
			&tempo,
			&notes,
			&section.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		section.TargetTempo = nullIntPtr(tempo)
		section.Notes = nullStringPtr(notes)
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

// UpdateSection updates a section's fields, reporting whether a row was changed
func (r *SongRepository) UpdateSection(sectionID, name string, orderIndex int, targetTempo *int, notes *string) (bool, error) {
	query := `
		UPDATE song_sections
		SET name = ?, order_index = ?, target_tempo = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, name, orderIndex, targetTempo, notes, sectionID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// DeleteSection removes a section
func (r *SongRepository) DeleteSection(sectionID string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM song_sections WHERE id = ?", sectionID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
