package service

import (
	"errors"
	"fmt"

	"sessionlog/internal/models"
	"sessionlog/internal/repository"
	"sessionlog/internal/validation"
)

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidGoalType = errors.New("invalid goal type")
)

// GoalService handles practice goal business logic
type GoalService struct {
	goalRepo *repository.GoalRepository
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// ListActiveGoals retrieves a user's active goals
func (s *GoalService) ListActiveGoals(userID string) ([]models.Goal, error) {
	goals, err := s.goalRepo.ListActive(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// SetGoal creates a new active goal. Any previous active goal of the same
// type is replaced.
func (s *GoalService) SetGoal(userID, goalType string, targetValue int) (*models.Goal, error) {
	if !models.IsValidGoalType(goalType) {
		return nil, ErrInvalidGoalType
	}
	if err := validation.ValidateGoalTarget(targetValue); err != nil {
		return nil, err
	}

	goal, err := s.goalRepo.CreateActive(userID, goalType, targetValue)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// DeactivateGoal marks a goal inactive without deleting its history
func (s *GoalService) DeactivateGoal(userID, goalID string) error {
	deactivated, err := s.goalRepo.Deactivate(userID, goalID)
	if err != nil {
		return fmt.Errorf("failed to deactivate goal: %w", err)
	}
	if !deactivated {
		return ErrGoalNotFound
	}
	return nil
}
