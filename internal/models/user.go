package models

import "time"

// User represents a registered account in the system
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"-"`
	OAuthSubject  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AuthSession represents an authenticated browser session
type AuthSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired checks if the session has expired
func (s *AuthSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
