package stats

import "testing"

func TestGoalCurrent(t *testing.T) {
	today := []Session{
		sessionOn(t, "2024-01-03", 30),
		sessionOn(t, "2024-01-03", 15),
	}
	week := []Session{
		sessionOn(t, "2024-01-01", 20),
		sessionOn(t, "2024-01-01", 10), // same date, counts once for sessions
		sessionOn(t, "2024-01-02", 25),
		sessionOn(t, "2024-01-03", 30),
		sessionOn(t, "2024-01-03", 15),
	}

	tests := []struct {
		name     string
		goalType string
		want     int
	}{
		{
			name:     "daily minutes sums today",
			goalType: GoalDailyMinutes,
			want:     45,
		},
		{
			name:     "weekly minutes sums the week",
			goalType: GoalWeeklyMinutes,
			want:     100,
		},
		{
			name:     "weekly sessions counts distinct dates",
			goalType: GoalWeeklySessions,
			want:     3,
		},
		{
			name:     "unknown type reports zero",
			goalType: "monthly_minutes",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GoalCurrent(tt.goalType, today, week); got != tt.want {
				t.Errorf("GoalCurrent(%s) = %d, want %d", tt.goalType, got, tt.want)
			}
		})
	}
}

func TestGoalPercentage(t *testing.T) {
	tests := []struct {
		name    string
		current int
		target  int
		want    int
	}{
		{
			name:    "zero progress",
			current: 0,
			target:  30,
			want:    0,
		},
		{
			name:    "partial progress rounds",
			current: 10,
			target:  30,
			want:    33,
		},
		{
			name:    "exactly met",
			current: 30,
			target:  30,
			want:    100,
		},
		{
			name:    "overshoot is capped",
			current: 45,
			target:  30,
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GoalPercentage(tt.current, tt.target); got != tt.want {
				t.Errorf("GoalPercentage(%d, %d) = %d, want %d", tt.current, tt.target, got, tt.want)
			}
		})
	}
}
