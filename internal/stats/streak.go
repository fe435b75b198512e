package stats

import (
	"sort"
	"time"
)

// PracticeDates returns the distinct calendar dates of a heatmap, sorted
// ascending. This is the input shape the streak calculators expect.
func PracticeDates(heatmap map[string]int) []string {
	dates := make([]string, 0, len(heatmap))
	for date := range heatmap {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// LongestStreak returns the length of the longest run of consecutive
// calendar dates. A single date yields 1; no dates yield 0.
func LongestStreak(dates []string) int {
	if len(dates) == 0 {
		return 0
	}
	sorted := make([]string, len(dates))
	copy(sorted, dates)
	sort.Strings(sorted)

	longest := 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		if daysBetween(sorted[i-1], sorted[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CurrentStreak returns the length of the run of consecutive practice
// dates ending at today or yesterday. If the most recent practice date
// is older than yesterday the streak is 0.
func CurrentStreak(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	sorted := make([]string, len(dates))
	copy(sorted, dates)
	sort.Strings(sorted)

	todayKey := DateKey(today)
	yesterdayKey := DateKey(today.AddDate(0, 0, -1))

	last := sorted[len(sorted)-1]
	if last != todayKey && last != yesterdayKey {
		return 0
	}

	streak := 1
	for i := len(sorted) - 2; i >= 0; i-- {
		if daysBetween(sorted[i], sorted[i+1]) != 1 {
			break
		}
		streak++
	}
	return streak
}
