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
	ErrSongNotFound    = errors.New("song not found")
	ErrSectionNotFound = errors.New("section not found")
)

// SongService handles song and section business logic
type SongService struct {
	songRepo *repository.SongRepository
}

// NewSongService creates a new song service
func NewSongService(songRepo *repository.SongRepository) *SongService {
	return &SongService{songRepo: songRepo}
}

// CreateSong adds a new song to a user's repertoire
func (s *SongService) CreateSong(userID, title string, artist *string, targetTempo *int) (*models.Song, error) {
	title = strings.TrimSpace(title)
	if err := validation.ValidateSongTitle(title); err != nil {
		return nil, err
	}
	if artist != nil {
		if err := validation.ValidateArtist(*artist); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateTempo(targetTempo); err != nil {
		return nil, err
	}

	song, err := s.songRepo.CreateSong(userID, title, normalizeOptional(artist), targetTempo)
	if err != nil {
		return nil, fmt.Errorf("failed to create song: %w", err)
	}
	return song, nil
}

// ListSongs retrieves all of a user's songs with their sections
func (s *SongService) ListSongs(userID string) ([]models.SongWithSections, error) {
	songs, err := s.songRepo.ListSongs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

// GetSong retrieves one song with its sections
func (s *SongService) GetSong(userID, songID string) (*models.SongWithSections, error) {
	song, err := s.songRepo.GetSongWithSections(userID, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	if song == nil {
		return nil, ErrSongNotFound
	}
	return song, nil
}

// UpdateSong updates a song's title, artist and target tempo
func (s *SongService) UpdateSong(userID, songID, title string, artist *string, targetTempo *int) (*models.Song, error) {
	title = strings.TrimSpace(title)
	if err := validation.ValidateSongTitle(title); err != nil {
		return nil, err
	}
	if artist != nil {
		if err := validation.ValidateArtist(*artist); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateTempo(targetTempo); err != nil {
		return nil, err
	}

	updated, err := s.songRepo.UpdateSong(userID, songID, title, normalizeOptional(artist), targetTempo)
	if err != nil {
		return nil, fmt.Errorf("failed to update song: %w", err)
	}
	if !updated {
		return nil, ErrSongNotFound
	}

	return s.songRepo.GetSongByID(userID, songID)
}

// DeleteSong removes a song. Practice sessions that referenced it survive
// with the song link cleared.
func (s *SongService) DeleteSong(userID, songID string) error {
	deleted, err := s.songRepo.DeleteSong(userID, songID)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if !deleted {
		return ErrSongNotFound
	}
	return nil
}

// AddSection adds a section to one of the user's songs
func (s *SongService) AddSection(userID, songID, name string, orderIndex int, targetTempo *int, notes *string) (*models.Section, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateSectionName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateOrderIndex(orderIndex); err != nil {
		return nil, err
	}
	if err := validation.ValidateTempo(targetTempo); err != nil {
		return nil, err
	}

	song, err := s.songRepo.GetSongByID(userID, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	if song == nil {
		return nil, ErrSongNotFound
	}

	section, err := s.songRepo.CreateSection(songID, name, orderIndex, targetTempo, normalizeOptional(notes))
	if err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}
	return section, nil
}

// UpdateSection updates a section on one of the user's songs
func (s *SongService) UpdateSection(userID, sectionID, name string, orderIndex int, targetTempo *int, notes *string) (*models.Section, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateSectionName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateOrderIndex(orderIndex); err != nil {
		return nil, err
	}
	if err := validation.ValidateTempo(targetTempo); err != nil {
		return nil, err
	}

	if err := s.checkSectionOwner(userID, sectionID); err != nil {
		return nil, err
	}

	updated, err := s.songRepo.UpdateSection(sectionID, name, orderIndex, targetTempo, normalizeOptional(notes))
	if err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}
	if !updated {
		return nil, ErrSectionNotFound
	}

	return s.songRepo.GetSectionByID(sectionID)
}

// DeleteSection removes a section from one of the user's songs
func (s *SongService) DeleteSection(userID, sectionID string) error {
	if err := s.checkSectionOwner(userID, sectionID); err != nil {
		return err
	}

	deleted, err := s.songRepo.DeleteSection(sectionID)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	if !deleted {
		return ErrSectionNotFound
	}
	return nil
}

// checkSectionOwner verifies the section's parent song belongs to the user
func (s *SongService) checkSectionOwner(userID, sectionID string) error {
	section, err := s.songRepo.GetSectionByID(sectionID)
	if err != nil {
		return fmt.Errorf("failed to get section: %w", err)
	}
	if section == nil {
		return ErrSectionNotFound
	}

	song, err := s.songRepo.GetSongByID(userID, section.SongID)
	if err != nil {
		return fmt.Errorf("failed to get song: %w", err)
	}
	if song == nil {
		return ErrSectionNotFound
	}
	return nil
}

// normalizeOptional trims an optional string, collapsing empty to nil
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
