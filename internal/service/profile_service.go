package service

import (
	"errors"
	"fmt"
	"strings"

	"sessionlog/internal/models"
	"sessionlog/internal/repository"
	"sessionlog/internal/validation"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// ProfileService handles public profile business logic
type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfile retrieves the user's own profile, which may not exist yet
func (s *ProfileService) GetProfile(userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// SaveProfile creates or updates the user's profile. A public profile
// requires a username.
func (s *ProfileService) SaveProfile(userID string, username, displayName, bio *string, isPublic bool) (*models.Profile, error) {
	if username != nil {
		normalized := strings.ToLower(strings.TrimSpace(*username))
		if normalized == "" {
			username = nil
		} else {
			if err := validation.ValidateUsername(normalized); err != nil {
				return nil, err
			}
			taken, err := s.profileRepo.IsUsernameTaken(normalized, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			if taken {
				return nil, ErrUsernameTaken
			}
			username = &normalized
		}
	}
	if isPublic && username == nil {
		return nil, validation.ValidationError{Field: "username", Message: "required for a public profile"}
	}

	if displayName != nil {
		if err := validation.ValidateDisplayName(*displayName); err != nil {
			return nil, err
		}
	}
	if bio != nil {
		if err := validation.ValidateBio(*bio); err != nil {
			return nil, err
		}
	}

	profile, err := s.profileRepo.Upsert(userID, username, normalizeOptional(displayName), normalizeOptional(bio), isPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// GetPublicProfile retrieves a profile by username only if it is public
func (s *ProfileService) GetPublicProfile(username string) (*models.Profile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	profile, err := s.profileRepo.GetPublicByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to get public profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}
