package stats

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	instant := time.Date(2024, 3, 5, 22, 45, 0, 0, time.UTC)
	if got := DateKey(instant); got != "2024-03-05" {
		t.Errorf("DateKey() = %q, want %q", got, "2024-03-05")
	}
}

func TestMonthKey(t *testing.T) {
	instant := time.Date(2024, 11, 30, 23, 59, 0, 0, time.UTC)
	if got := MonthKey(instant); got != "2024-11" {
		t.Errorf("MonthKey() = %q, want %q", got, "2024-11")
	}
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "2024-01", want: "Jan 24"},
		{key: "2023-12", want: "Dec 23"},
		{key: "not-a-month", want: "not-a-month"},
	}

	for _, tt := range tests {
		if got := MonthLabel(tt.key); got != tt.want {
			t.Errorf("MonthLabel(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestWeekStart(t *testing.T) {
	// 2024-01-03 is a Wednesday; the week started Sunday 2023-12-31
	wednesday := mustDate(t, "2024-01-03")
	if got := DateKey(WeekStart(wednesday)); got != "2023-12-31" {
		t.Errorf("WeekStart(wed) = %q, want %q", got, "2023-12-31")
	}

	// a Sunday is its own week start
	sunday := mustDate(t, "2024-01-07")
	if got := DateKey(WeekStart(sunday)); got != "2024-01-07" {
		t.Errorf("WeekStart(sun) = %q, want %q", got, "2024-01-07")
	}
}

func TestTrailingMonthKeys(t *testing.T) {
	keys := TrailingMonthKeys(mustDate(t, "2024-06-15"))

	if len(keys) != 12 {
		t.Fatalf("expected 12 keys, got %d", len(keys))
	}
	if keys[0] != "2023-07" {
		t.Errorf("keys[0] = %q, want %q", keys[0], "2023-07")
	}
	if keys[11] != "2024-06" {
		t.Errorf("keys[11] = %q, want %q", keys[11], "2024-06")
	}

	// contiguous, no gaps
	for i := 1; i < len(keys); i++ {
		prev, err := time.Parse("2006-01", keys[i-1])
		if err != nil {
			t.Fatalf("bad key %q", keys[i-1])
		}
		if MonthKey(prev.AddDate(0, 1, 0)) != keys[i] {
			t.Errorf("gap between %q and %q", keys[i-1], keys[i])
		}
	}
}

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2024, 3, 5, 22, 45, 30, 0, time.UTC)
	start := StartOfDay(instant)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("StartOfDay() = %v, want midnight", start)
	}
	if DateKey(start) != "2024-03-05" {
		t.Errorf("StartOfDay() changed the date: %v", start)
	}
}
