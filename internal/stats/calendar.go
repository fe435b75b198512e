// Package stats computes derived practice statistics (heatmaps, calendar
// aggregates, streaks, goal progress) over in-memory session lists.
// All functions are pure: they never mutate their input and the same
// input always produces the same output.
package stats

import "time"

const (
	dateKeyLayout  = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// dayNames is the fixed Sun..Sat bucket order used by day-of-week aggregation
var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DateKey returns the calendar-date key (YYYY-MM-DD) for an instant
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// MonthKey returns the year-month key (YYYY-MM) for an instant
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// MonthLabel formats a year-month key as a short chart label, e.g. "Jan 24".
// An unparseable key is returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 06")
}

// StartOfDay truncates an instant to local midnight
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns local midnight of the Sunday starting the week containing t
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// TrailingMonthKeys returns the year-month keys for the 12 calendar months
// ending at the month containing now, oldest first.
func TrailingMonthKeys(now time.Time) []string {
	keys := make([]string, 0, 12)
	for i := 11; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		keys = append(keys, MonthKey(m))
	}
	return keys
}

// daysBetween returns the whole-day difference between two date keys.
// Invalid keys count as a gap larger than one day.
func daysBetween(earlier, later string) int {
	a, err := time.Parse(dateKeyLayout, earlier)
	if err != nil {
		return -1
	}
	b, err := time.Parse(dateKeyLayout, later)
	if err != nil {
		return -1
	}
	return int(b.Sub(a).Hours() / 24)
}
