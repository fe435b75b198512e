package service

import (
	"errors"
	"fmt"

	"sessionlog/internal/models"
	"sessionlog/internal/repository"
	"sessionlog/internal/validation"
)

var ErrSessionRecordNotFound = errors.New("practice session not found")

// SessionService handles practice session business logic
type SessionService struct {
	sessionRepo *repository.SessionRepository
	songRepo    *repository.SongRepository
}

// NewSessionService creates a new practice session service
func NewSessionService(sessionRepo *repository.SessionRepository, songRepo *repository.SongRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo, songRepo: songRepo}
}

// LogSession validates and stores a new practice session
func (s *SessionService) LogSession(session *models.PracticeSession) (*models.SessionWithDetails, error) {
	if err := s.validateSession(session); err != nil {
		return nil, err
	}

	created, err := s.sessionRepo.Create(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return created, nil
}

// GetSession retrieves one practice session with song and section details
func (s *SessionService) GetSession(userID, sessionID string) (*models.SessionWithDetails, error) {
	session, err := s.sessionRepo.GetByID(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionRecordNotFound
	}
	return session, nil
}

// ListSessions retrieves a user's sessions matching the filter, newest first
func (s *SessionService) ListSessions(userID string, filter models.SessionFilter) ([]models.SessionWithDetails, error) {
	sessions, err := s.sessionRepo.List(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// UpdateSession validates and replaces a practice session's fields
func (s *SessionService) UpdateSession(session *models.PracticeSession) (*models.SessionWithDetails, error) {
	if err := s.validateSession(session); err != nil {
		return nil, err
	}

	updated, err := s.sessionRepo.Update(session)
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	if !updated {
		return nil, ErrSessionRecordNotFound
	}

	return s.sessionRepo.GetByID(session.UserID, session.ID)
}

// DeleteSession removes a practice session
func (s *SessionService) DeleteSession(userID, sessionID string) error {
	deleted, err := s.sessionRepo.Delete(userID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if !deleted {
		return ErrSessionRecordNotFound
	}
	return nil
}

// validateSession checks field bounds and that any referenced song and
// section exist and belong to the session's user
func (s *SessionService) validateSession(session *models.PracticeSession) error {
	if err := validation.ValidatePracticedAt(session.PracticedAt); err != nil {
		return err
	}
	if err := validation.ValidateDuration(session.DurationMinutes); err != nil {
		return err
	}
	if err := validation.ValidateTempo(session.TempoBPM); err != nil {
		return err
	}
	if err := validation.ValidateRating("accuracy_rating", session.AccuracyRating); err != nil {
		return err
	}
	if err := validation.ValidateRating("difficulty_rating", session.DifficultyRating); err != nil {
		return err
	}

	// A section without its parent song is ambiguous
	if session.SectionID != nil && session.SongID == nil {
		return validation.ValidationError{Field: "section_id", Message: "section requires a song"}
	}

	if session.SongID != nil {
		song, err := s.songRepo.GetSongByID(session.UserID, *session.SongID)
		if err != nil {
			return fmt.Errorf("failed to check song: %w", err)
		}
		if song == nil {
			return ErrSongNotFound
		}

		if session.SectionID != nil {
			section, err := s.songRepo.GetSectionByID(*session.SectionID)
			if err != nil {
				return fmt.Errorf("failed to check section: %w", err)
			}
			if section == nil || section.SongID != *session.SongID {
				return ErrSectionNotFound
			}
		}
	}

	return nil
}
