package repository

import (
	"database/sql"
	"time"

	"sessionlog/internal/database"
	"sessionlog/internal/models"
	"sessionlog/internal/security"
)

// UserRepository handles user and auth-session database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new password-based user account
func (r *UserRepository) CreateUser(email, passwordHash, name string) (*models.User, error) {
	id := security.GenerateID()
	query := `
		INSERT INTO users (id, email, password_hash, name)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, id, email, passwordHash, name); err != nil {
		return nil, err
	}

	return r.GetUserByID(id)
}

// CreateOAuthUser creates a user account backed by an OAuth identity
func (r *UserRepository) CreateOAuthUser(email, name, provider, subject string) (*models.User, error) {
	id := security.GenerateID()
	query := `
		INSERT INTO users (id, email, name, oauth_provider, oauth_subject)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, id, email, name, provider, subject); err != nil {
		return nil, err
	}

	return r.GetUserByID(id)
}

// GetUserByID retrieves a user by ID, returning nil if not found
func (r *UserRepository) GetUserByID(id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name,
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		       created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetUserByEmail retrieves a user by email, returning nil if not found
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name,
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		       created_at, updated_at
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.db.QueryRow(query, email))
}

// GetUserByOAuth retrieves a user by OAuth identity, returning nil if not found
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name,
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		       created_at, updated_at
		FROM users
		WHERE oauth_provider = ? AND oauth_subject = ?
	`
	return r.scanUser(r.db.QueryRow(query, provider, subject))
}

// ListUsers retrieves every user, used by the weekly digest sender
func (r *UserRepository) ListUsers() ([]models.User, error) {
	query := `
		SELECT id, email, password_hash, name,
		       COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
		       created_at, updated_at
		FROM users
		ORDER BY created_at
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.Name,
			&user.OAuthProvider,
			&user.OAuthSubject,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// LinkOAuthProvider attaches an OAuth identity to an existing user
func (r *UserRepository) LinkOAuthProvider(userID, provider, subject string) error {
	query := `
		UPDATE users
		SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, provider, subject, userID)
	return err
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, passwordHash, userID)
	return err
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSession stores a new auth session
func (r *UserRepository) CreateSession(sessionID, userID string, expiresAt time.Time) (*models.AuthSession, error) {
	query := `
		INSERT INTO auth_sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.Exec(query, sessionID, userID, expiresAt); err != nil {
		return nil, err
	}

	return &models.AuthSession{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves an auth session by ID, returning nil if not found
func (r *UserRepository) GetSession(sessionID string) (*models.AuthSession, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM auth_sessions
		WHERE id = ?
	`

	session := &models.AuthSession{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes an auth session
func (r *UserRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM auth_sessions WHERE id = ?", sessionID)
	return err
}

// DeleteExpiredSessions removes all expired auth sessions and reports how
// many were deleted
func (r *UserRepository) DeleteExpiredSessions() (int64, error) {
	result, err := r.db.Exec("DELETE FROM auth_sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
