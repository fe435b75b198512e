package stats

import (
	"math"
	"sort"
	"time"
)

// GeneralSectionLabel is the synthetic bucket for sessions logged without a section
const GeneralSectionLabel = "General"

// topSongsLimit caps the ranked song list
const topSongsLimit = 10

// DayMinutes is one day-of-week bucket
type DayMinutes struct {
	Day     string `json:"day"`
	Minutes int    `json:"minutes"`
}

// MonthMinutes is one trailing-month bucket
type MonthMinutes struct {
	Month   string `json:"month"`
	Minutes int    `json:"minutes"`
}

// MonthAverage is one trailing-month average-session-duration bucket
type MonthAverage struct {
	Month      string `json:"month"`
	AvgMinutes int    `json:"avgMinutes"`
}

// SongMinutes is one entry of the ranked most-practiced-songs list
type SongMinutes struct {
	Title   string `json:"title"`
	Minutes int    `json:"minutes"`
}

// SectionUsage is one entry of the per-section breakdown
type SectionUsage struct {
	Name         string `json:"name"`
	Minutes      int    `json:"minutes"`
	SessionCount int    `json:"sessionCount"`
}

// TempoPoint is one entry of the tempo-over-time series
type TempoPoint struct {
	Date    string `json:"date"`
	Tempo   int    `json:"tempo"`
	Section string `json:"section"`
}

// AccuracyPoint is one entry of the accuracy-over-time series
type AccuracyPoint struct {
	Date     string `json:"date"`
	Accuracy int    `json:"accuracy"`
}

// Heatmap folds sessions into a calendar-date -> total-minutes map.
// Sessions practiced before since are excluded; a zero since applies
// no lower bound.
func Heatmap(sessions []Session, since time.Time) map[string]int {
	totals := make(map[string]int)
	for _, s := range sessions {
		if !since.IsZero() && s.PracticedAt.Before(since) {
			continue
		}
		totals[DateKey(s.PracticedAt)] += s.DurationMinutes
	}
	return totals
}

// TotalMinutes sums the duration of every session in the list
func TotalMinutes(sessions []Session) int {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

// ByDayOfWeek buckets practice minutes into the 7 fixed Sun..Sat buckets.
// Days with no sessions report 0.
func ByDayOfWeek(sessions []Session) []DayMinutes {
	var totals [7]int
	for _, s := range sessions {
		totals[int(s.PracticedAt.Weekday())] += s.DurationMinutes
	}
	buckets := make([]DayMinutes, 7)
	for i, name := range dayNames {
		buckets[i] = DayMinutes{Day: name, Minutes: totals[i]}
	}
	return buckets
}

// ByMonth buckets practice minutes into the 12 trailing calendar months
// ending at the month containing now, oldest first. Months with no
// sessions report 0.
func ByMonth(sessions []Session, now time.Time) []MonthMinutes {
	totals := make(map[string]int)
	for _, s := range sessions {
		totals[MonthKey(s.PracticedAt)] += s.DurationMinutes
	}
	keys := TrailingMonthKeys(now)
	buckets := make([]MonthMinutes, len(keys))
	for i, key := range keys {
		buckets[i] = MonthMinutes{Month: MonthLabel(key), Minutes: totals[key]}
	}
	return buckets
}

// AvgDurationByMonth computes the average session duration per trailing
// month, rounded to whole minutes. Months with no sessions report 0.
func AvgDurationByMonth(sessions []Session, now time.Time) []MonthAverage {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, s := range sessions {
		key := MonthKey(s.PracticedAt)
		sums[key] += s.DurationMinutes
		counts[key]++
	}
	keys := TrailingMonthKeys(now)
	buckets := make([]MonthAverage, len(keys))
	for i, key := range keys {
		avg := 0
		if counts[key] > 0 {
			avg = int(math.Round(float64(sums[key]) / float64(counts[key])))
		}
		buckets[i] = MonthAverage{Month: MonthLabel(key), AvgMinutes: avg}
	}
	return buckets
}

// TopSongs ranks songs by total practice minutes, descending, capped at
// ten entries. Sessions not logged against a song are excluded. Ties keep
// first-encounter order.
func TopSongs(sessions []Session) []SongMinutes {
	totals := make(map[string]int)
	var order []string
	titles := make(map[string]string)
	for _, s := range sessions {
		if s.SongID == "" {
			continue
		}
		if _, seen := totals[s.SongID]; !seen {
			order = append(order, s.SongID)
			titles[s.SongID] = s.SongTitle
		}
		totals[s.SongID] += s.DurationMinutes
	}

	ranked := make([]SongMinutes, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, SongMinutes{Title: titles[id], Minutes: totals[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Minutes > ranked[j].Minutes
	})
	if len(ranked) > topSongsLimit {
		ranked = ranked[:topSongsLimit]
	}
	return ranked
}

// SectionBreakdown groups sessions by section, with a synthetic "General"
// bucket for sessions logged without one. Buckets appear in
// first-encounter order.
func SectionBreakdown(sessions []Session) []SectionUsage {
	type bucket struct {
		name    string
		minutes int
		count   int
	}
	byID := make(map[string]*bucket)
	var order []string
	for _, s := range sessions {
		key := s.SectionID
		name := s.SectionName
		if key == "" {
			key = "general"
			name = GeneralSectionLabel
		}
		b, ok := byID[key]
		if !ok {
			b = &bucket{name: name}
			byID[key] = b
			order = append(order, key)
		}
		b.minutes += s.DurationMinutes
		b.count++
	}

	breakdown := make([]SectionUsage, 0, len(order))
	for _, key := range order {
		b := byID[key]
		breakdown = append(breakdown, SectionUsage{Name: b.name, Minutes: b.minutes, SessionCount: b.count})
	}
	return breakdown
}

// TempoSeries projects sessions carrying a tempo onto (date, bpm, section)
// points in input order. Sessions without a tempo are excluded.
func TempoSeries(sessions []Session) []TempoPoint {
	var series []TempoPoint
	for _, s := range sessions {
		if s.TempoBPM == nil {
			continue
		}
		section := s.SectionName
		if section == "" {
			section = GeneralSectionLabel
		}
		series = append(series, TempoPoint{
			Date:    DateKey(s.PracticedAt),
			Tempo:   *s.TempoBPM,
			Section: section,
		})
	}
	return series
}

// AccuracySeries projects sessions carrying an accuracy rating onto
// (date, rating) points in input order. Sessions without a rating are
// excluded.
func AccuracySeries(sessions []Session) []AccuracyPoint {
	var series []AccuracyPoint
	for _, s := range sessions {
		if s.AccuracyRating == nil {
			continue
		}
		series = append(series, AccuracyPoint{
			Date:     DateKey(s.PracticedAt),
			Accuracy: *s.AccuracyRating,
		})
	}
	return series
}
