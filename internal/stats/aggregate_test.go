package stats

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func sessionOn(t *testing.T, key string, minutes int) Session {
	t.Helper()
	return Session{PracticedAt: mustDate(t, key), DurationMinutes: minutes}
}

func TestHeatmap(t *testing.T) {
	sessions := []Session{
		sessionOn(t, "2024-01-01", 30),
		sessionOn(t, "2024-01-01", 15),
		sessionOn(t, "2024-01-03", 20),
	}

	heatmap := Heatmap(sessions, time.Time{})

	if len(heatmap) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(heatmap))
	}
	if heatmap["2024-01-01"] != 45 {
		t.Errorf("2024-01-01 = %d, want 45", heatmap["2024-01-01"])
	}
	if heatmap["2024-01-03"] != 20 {
		t.Errorf("2024-01-03 = %d, want 20", heatmap["2024-01-03"])
	}
}

func TestHeatmapWindowBound(t *testing.T) {
	sessions := []Session{
		sessionOn(t, "2023-01-01", 60),
		sessionOn(t, "2024-01-02", 30),
	}

	heatmap := Heatmap(sessions, mustDate(t, "2024-01-01"))

	if _, found := heatmap["2023-01-01"]; found {
		t.Error("session before the window bound should be excluded")
	}
	if heatmap["2024-01-02"] != 30 {
		t.Errorf("2024-01-02 = %d, want 30", heatmap["2024-01-02"])
	}
}

func TestByDayOfWeek(t *testing.T) {
	// 2024-01-07 is a Sunday
	sessions := []Session{
		sessionOn(t, "2024-01-07", 30),
		sessionOn(t, "2024-01-08", 20),
		sessionOn(t, "2024-01-15", 40),
	}

	buckets := ByDayOfWeek(sessions)

	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if buckets[0].Day != "Sun" || buckets[6].Day != "Sat" {
		t.Errorf("bucket order wrong: first %q, last %q", buckets[0].Day, buckets[6].Day)
	}
	if buckets[0].Minutes != 30 {
		t.Errorf("Sun = %d, want 30", buckets[0].Minutes)
	}
	if buckets[1].Minutes != 60 {
		t.Errorf("Mon = %d, want 60", buckets[1].Minutes)
	}
	for _, b := range buckets[2:] {
		if b.Minutes != 0 {
			t.Errorf("%s = %d, want 0", b.Day, b.Minutes)
		}
	}
}

func TestByMonthTwelveContiguousBuckets(t *testing.T) {
	now := mustDate(t, "2024-06-15")
	sessions := []Session{
		sessionOn(t, "2024-06-01", 30),
		sessionOn(t, "2023-07-10", 45),
		// outside the window entirely
		sessionOn(t, "2022-01-01", 500),
	}

	buckets := ByMonth(sessions, now)

	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}
	if buckets[0].Month != "Jul 23" {
		t.Errorf("oldest bucket = %q, want %q", buckets[0].Month, "Jul 23")
	}
	if buckets[11].Month != "Jun 24" {
		t.Errorf("newest bucket = %q, want %q", buckets[11].Month, "Jun 24")
	}
	if buckets[0].Minutes != 45 {
		t.Errorf("Jul 23 = %d, want 45", buckets[0].Minutes)
	}
	if buckets[11].Minutes != 30 {
		t.Errorf("Jun 24 = %d, want 30", buckets[11].Minutes)
	}
	for i, b := range buckets[1:11] {
		if b.Minutes != 0 {
			t.Errorf("bucket %d (%s) = %d, want 0", i+1, b.Month, b.Minutes)
		}
	}
}

// Day-of-week totals and month totals over the same window must both sum
// to the total practice minutes in that window.
func TestAggregationSumsAgree(t *testing.T) {
	now := mustDate(t, "2024-06-15")
	sessions := []Session{
		sessionOn(t, "2024-06-01", 30),
		sessionOn(t, "2024-05-12", 25),
		sessionOn(t, "2024-03-03", 45),
		sessionOn(t, "2023-08-20", 60),
	}

	total := TotalMinutes(sessions)

	daySum := 0
	for _, b := range ByDayOfWeek(sessions) {
		daySum += b.Minutes
	}
	monthSum := 0
	for _, b := range ByMonth(sessions, now) {
		monthSum += b.Minutes
	}

	if daySum != total {
		t.Errorf("day-of-week sum %d != total %d", daySum, total)
	}
	if monthSum != total {
		t.Errorf("month sum %d != total %d", monthSum, total)
	}
}

func TestAvgDurationByMonth(t *testing.T) {
	now := mustDate(t, "2024-06-15")
	sessions := []Session{
		sessionOn(t, "2024-06-01", 30),
		sessionOn(t, "2024-06-02", 45),
		sessionOn(t, "2024-06-03", 20),
	}

	buckets := AvgDurationByMonth(sessions, now)

	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}
	// (30+45+20)/3 rounds to 32
	if buckets[11].AvgMinutes != 32 {
		t.Errorf("current month avg = %d, want 32", buckets[11].AvgMinutes)
	}
	// empty months average 0, never divide by zero
	if buckets[0].AvgMinutes != 0 {
		t.Errorf("empty month avg = %d, want 0", buckets[0].AvgMinutes)
	}
}

func TestTopSongs(t *testing.T) {
	song := func(key string, minutes int, id, title string) Session {
		s := sessionOn(t, key, minutes)
		s.SongID = id
		s.SongTitle = title
		return s
	}

	sessions := []Session{
		song("2024-01-01", 30, "s1", "Autumn Leaves"),
		song("2024-01-02", 60, "s2", "Blue Bossa"),
		song("2024-01-03", 20, "s1", "Autumn Leaves"),
		// no song reference, excluded
		sessionOn(t, "2024-01-04", 90),
	}

	top := TopSongs(sessions)

	if len(top) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(top))
	}
	if top[0].Title != "Blue Bossa" || top[0].Minutes != 60 {
		t.Errorf("top[0] = %+v, want Blue Bossa/60", top[0])
	}
	if top[1].Title != "Autumn Leaves" || top[1].Minutes != 50 {
		t.Errorf("top[1] = %+v, want Autumn Leaves/50", top[1])
	}
}

// Ties keep first-encounter order
func TestTopSongsStableTies(t *testing.T) {
	sessions := []Session{
		{PracticedAt: mustDate(t, "2024-01-01"), DurationMinutes: 40, SongID: "s1", SongTitle: "First Seen"},
		{PracticedAt: mustDate(t, "2024-01-02"), DurationMinutes: 40, SongID: "s2", SongTitle: "Second Seen"},
	}

	top := TopSongs(sessions)

	if len(top) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(top))
	}
	if top[0].Title != "First Seen" {
		t.Errorf("tie broken against encounter order: top[0] = %q", top[0].Title)
	}
}

func TestTopSongsCapAndOrder(t *testing.T) {
	var sessions []Session
	for i := 0; i < 15; i++ {
		s := sessionOn(t, "2024-01-01", (i+1)*10)
		s.SongID = string(rune('a' + i))
		s.SongTitle = s.SongID
		sessions = append(sessions, s)
	}

	top := TopSongs(sessions)

	if len(top) != 10 {
		t.Fatalf("expected 10 songs, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Minutes > top[i-1].Minutes {
			t.Errorf("ranking not non-increasing at %d: %d > %d", i, top[i].Minutes, top[i-1].Minutes)
		}
	}
}

// The aggregate must not depend on the order sessions arrive in
func TestTopSongsOrderIndependent(t *testing.T) {
	forward := []Session{
		{PracticedAt: mustDate(t, "2024-01-01"), DurationMinutes: 30, SongID: "s1", SongTitle: "One"},
		{PracticedAt: mustDate(t, "2024-01-02"), DurationMinutes: 50, SongID: "s2", SongTitle: "Two"},
		{PracticedAt: mustDate(t, "2024-01-03"), DurationMinutes: 25, SongID: "s1", SongTitle: "One"},
	}
	reversed := []Session{forward[2], forward[1], forward[0]}

	a := TopSongs(forward)
	b := TopSongs(reversed)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSectionBreakdown(t *testing.T) {
	withSection := func(key string, minutes int, id, name string) Session {
		s := sessionOn(t, key, minutes)
		s.SectionID = id
		s.SectionName = name
		return s
	}

	sessions := []Session{
		withSection("2024-01-01", 30, "sec1", "Chorus"),
		withSection("2024-01-02", 15, "sec1", "Chorus"),
		sessionOn(t, "2024-01-03", 20),
		sessionOn(t, "2024-01-04", 10),
	}

	breakdown := SectionBreakdown(sessions)

	if len(breakdown) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(breakdown))
	}
	if breakdown[0].Name != "Chorus" || breakdown[0].Minutes != 45 || breakdown[0].SessionCount != 2 {
		t.Errorf("chorus bucket = %+v", breakdown[0])
	}
	if breakdown[1].Name != GeneralSectionLabel || breakdown[1].Minutes != 30 || breakdown[1].SessionCount != 2 {
		t.Errorf("general bucket = %+v", breakdown[1])
	}
}

func TestTempoSeries(t *testing.T) {
	sessions := []Session{
		{PracticedAt: mustDate(t, "2024-01-01"), DurationMinutes: 30, TempoBPM: intPtr(90), SectionName: "Verse"},
		{PracticedAt: mustDate(t, "2024-01-02"), DurationMinutes: 30},
		{PracticedAt: mustDate(t, "2024-01-03"), DurationMinutes: 30, TempoBPM: intPtr(100)},
	}

	series := TempoSeries(sessions)

	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if series[0].Date != "2024-01-01" || series[0].Tempo != 90 || series[0].Section != "Verse" {
		t.Errorf("series[0] = %+v", series[0])
	}
	if series[1].Section != GeneralSectionLabel {
		t.Errorf("sectionless point labeled %q, want %q", series[1].Section, GeneralSectionLabel)
	}
}

func TestAccuracySeries(t *testing.T) {
	sessions := []Session{
		{PracticedAt: mustDate(t, "2024-01-01"), DurationMinutes: 30, AccuracyRating: intPtr(4)},
		{PracticedAt: mustDate(t, "2024-01-02"), DurationMinutes: 30},
	}

	series := AccuracySeries(sessions)

	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}
	if series[0].Date != "2024-01-01" || series[0].Accuracy != 4 {
		t.Errorf("series[0] = %+v", series[0])
	}
}

func TestEmptyInputs(t *testing.T) {
	now := mustDate(t, "2024-06-15")

	if got := len(Heatmap(nil, time.Time{})); got != 0 {
		t.Errorf("Heatmap(nil) has %d entries", got)
	}
	if got := TotalMinutes(nil); got != 0 {
		t.Errorf("TotalMinutes(nil) = %d", got)
	}
	if got := len(ByDayOfWeek(nil)); got != 7 {
		t.Errorf("ByDayOfWeek(nil) has %d buckets, want 7", got)
	}
	if got := len(ByMonth(nil, now)); got != 12 {
		t.Errorf("ByMonth(nil) has %d buckets, want 12", got)
	}
	if got := len(TopSongs(nil)); got != 0 {
		t.Errorf("TopSongs(nil) has %d entries", got)
	}
	if got := len(SectionBreakdown(nil)); got != 0 {
		t.Errorf("SectionBreakdown(nil) has %d buckets", got)
	}
}
