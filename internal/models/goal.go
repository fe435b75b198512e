package models

import "time"

// Goal types evaluated over a rolling daily or weekly window
const (
	GoalDailyMinutes   = "daily_minutes"
	GoalWeeklyMinutes  = "weekly_minutes"
	GoalWeeklySessions = "weekly_sessions"
)

// Goal represents a user-defined practice target
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	TargetValue int       `json:"target_value"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsValidGoalType reports whether t is a known goal type
func IsValidGoalType(t string) bool {
	switch t {
	case GoalDailyMinutes, GoalWeeklyMinutes, GoalWeeklySessions:
		return true
	}
	return false
}
