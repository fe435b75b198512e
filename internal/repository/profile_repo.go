package repository

import (
	"database/sql"

	"sessionlog/internal/database"
	"sessionlog/internal/models"
	"sessionlog/internal/security"
)

// ProfileRepository handles public profile database operations
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID retrieves a user's profile, returning nil if none exists yet
func (r *ProfileRepository) GetByUserID(userID string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, username, display_name, bio, is_public, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`
	return r.scanProfile(r.db.QueryRow(query, userID))
}

// GetPublicByUsername retrieves a profile by username, returning nil if it
// does not exist or is not public
func (r *ProfileRepository) GetPublicByUsername(username string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, username, display_name, bio, is_public, created_at, updated_at
		FROM profiles
		WHERE username = ? AND is_public = ?
	`
	return r.scanProfile(r.db.QueryRow(query, username, true))
}

// IsUsernameTaken reports whether a username belongs to someone other than
// the given user
func (r *ProfileRepository) IsUsernameTaken(username, userID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM profiles WHERE username = ? AND user_id != ?"
	if err := r.db.QueryRow(query, username, userID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert creates or replaces a user's profile
func (r *ProfileRepository) Upsert(userID string, username, displayName, bio *string, isPublic bool) (*models.Profile, error) {
	query := r.db.Dialect.UpsertProfileQuery()
	id := security.GenerateID()

	if _, err := r.db.Exec(query, id, userID, username, displayName, bio, isPublic); err != nil {
		return nil, err
	}

	return r.GetByUserID(userID)
}

func (r *ProfileRepository) scanProfile(row *sql.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	var username, displayName, bio sql.NullString
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&username,
		&displayName,
		&bio,
		&profile.IsPublic,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	profile.Username = nullStringPtr(username)
	profile.DisplayName = nullStringPtr(displayName)
	profile.Bio = nullStringPtr(bio)
	return profile, nil
}
