package stats

import "math"

// Goal type names shared with the storage layer
const (
	GoalDailyMinutes   = "daily_minutes"
	GoalWeeklyMinutes  = "weekly_minutes"
	GoalWeeklySessions = "weekly_sessions"
)

// GoalCurrent computes the current value for a goal type from the
// sessions practiced today and the sessions practiced since the start of
// the current week. weekly_sessions counts distinct practice dates, not
// individual sessions. An unknown type reports 0.
func GoalCurrent(goalType string, todaySessions, weekSessions []Session) int {
	switch goalType {
	case GoalDailyMinutes:
		return TotalMinutes(todaySessions)
	case GoalWeeklyMinutes:
		return TotalMinutes(weekSessions)
	case GoalWeeklySessions:
		return DistinctPracticeDates(weekSessions)
	}
	return 0
}

// GoalPercentage returns current as a rounded percentage of target,
// capped at 100. Callers must reject non-positive targets at goal
// creation; they never reach this function.
func GoalPercentage(current, target int) int {
	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// DistinctPracticeDates counts the distinct calendar dates covered by a
// session list
func DistinctPracticeDates(sessions []Session) int {
	seen := make(map[string]struct{})
	for _, s := range sessions {
		seen[DateKey(s.PracticedAt)] = struct{}{}
	}
	return len(seen)
}
