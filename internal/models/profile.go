package models

import "time"

// Profile represents a user's optionally-public profile page
type Profile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    *string   `json:"username"`
	DisplayName *string   `json:"display_name"`
	Bio         *string   `json:"bio"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Name returns the display name if set, falling back to the username
func (p *Profile) Name() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	if p.Username != nil {
		return *p.Username
	}
	return ""
}
