package models

import (
	"testing"
	"time"
)

func TestAuthSessionIsExpired(t *testing.T) {
	expired := AuthSession{ExpiresAt: time.Now().Add(-1 * time.Minute)}
	if !expired.IsExpired() {
		t.Error("session past its expiry should be expired")
	}

	live := AuthSession{ExpiresAt: time.Now().Add(1 * time.Hour)}
	if live.IsExpired() {
		t.Error("session before its expiry should not be expired")
	}
}

func TestIsValidGoalType(t *testing.T) {
	tests := []struct {
		goalType string
		valid    bool
	}{
		{GoalDailyMinutes, true},
		{GoalWeeklyMinutes, true},
		{GoalWeeklySessions, true},
		{"monthly_minutes", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidGoalType(tt.goalType); got != tt.valid {
			t.Errorf("IsValidGoalType(%q) = %v, want %v", tt.goalType, got, tt.valid)
		}
	}
}

func TestProfileName(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name     string
		profile  Profile
		expected string
	}{
		{
			name:     "display name preferred",
			profile:  Profile{DisplayName: strPtr("Jo Music"), Username: strPtr("jo")},
			expected: "Jo Music",
		},
		{
			name:     "falls back to username",
			profile:  Profile{Username: strPtr("jo")},
			expected: "jo",
		},
		{
			name:     "empty display name falls back",
			profile:  Profile{DisplayName: strPtr(""), Username: strPtr("jo")},
			expected: "jo",
		},
		{
			name:     "nothing set",
			profile:  Profile{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.Name(); got != tt.expected {
				t.Errorf("Name() = %q, want %q", got, tt.expected)
			}
		})
	}
}
