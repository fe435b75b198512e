package repository

import (
	"database/sql"

	"sessionlog/internal/database"
	"sessionlog/internal/models"
	"sessionlog/internal/security"
)

// GoalRepository handles goal database operations
type GoalRepository struct {
	db *database.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *database.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// ListActive retrieves a user's active goals, newest first
func (r *GoalRepository) ListActive(userID string) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, type, target_value, active, created_at
		FROM goals
		WHERE user_id = ? AND active = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var goal models.Goal
		err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Type,
			&goal.TargetValue,
			&goal.Active,
			&goal.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// GetByID retrieves a goal owned by the user, returning nil if not found
func (r *GoalRepository) GetByID(userID, goalID string) (*models.Goal, error) {
	query := `
		SELECT id, user_id, type, target_value, active, created_at
		FROM goals
		WHERE id = ? AND user_id = ?
	`

	goal := &models.Goal{}
	err := r.db.QueryRow(query, goalID, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Type,
		&goal.TargetValue,
		&goal.Active,
		&goal.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// CreateActive inserts a new active goal, deactivating any existing active
// goal of the same type in the same transaction so at most one active goal
// per type exists at a time.
func (r *GoalRepository) CreateActive(userID, goalType string, targetValue int) (*models.Goal, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"UPDATE goals SET active = ? WHERE user_id = ? AND type = ? AND active = ?",
		false, userID, goalType, true,
	)
	if err != nil {
		return nil, err
	}

	id := security.GenerateID()
	_, err = tx.Exec(
		"INSERT INTO goals (id, user_id, type, target_value, active) VALUES (?, ?, ?, ?, ?)",
		id, userID, goalType, targetValue, true,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(userID, id)
}

// Deactivate marks a goal inactive, reporting whether a row was changed
func (r *GoalRepository) Deactivate(userID, goalID string) (bool, error) {
	result, err := r.db.Exec(
		"UPDATE goals SET active = ? WHERE id = ? AND user_id = ?",
		false, goalID, userID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}
