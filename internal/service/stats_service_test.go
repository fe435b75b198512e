package service

import (
	"testing"
	"time"

	"sessionlog/internal/models"
)

func TestToStatsSessions(t *testing.T) {
	loc := time.UTC
	svc := NewStatsService(nil, nil, nil, nil, loc)

	tempo := 120
	accuracy := 4
	practicedAt := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

	rows := []models.SessionWithDetails{
		{
			PracticeSession: models.PracticeSession{
				PracticedAt:     practicedAt,
				DurationMinutes: 45,
				TempoBPM:        &tempo,
				AccuracyRating:  &accuracy,
			},
			Song:    &models.SongSummary{ID: "song-1", Title: "Autumn Leaves"},
			Section: &models.SectionSummary{ID: "sec-1", Name: "Bridge"},
		},
		{
			PracticeSession: models.PracticeSession{
				PracticedAt:     practicedAt.Add(24 * time.Hour),
				DurationMinutes: 30,
			},
		},
	}

	records := svc.toStatsSessions(rows)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.SongID != "song-1" || first.SongTitle != "Autumn Leaves" {
		t.Errorf("song fields not mapped: %+v", first)
	}
	if first.SectionID != "sec-1" || first.SectionName != "Bridge" {
		t.Errorf("section fields not mapped: %+v", first)
	}
	if first.TempoBPM == nil || *first.TempoBPM != 120 {
		t.Errorf("tempo not mapped: %+v", first.TempoBPM)
	}
	if first.DurationMinutes != 45 {
		t.Errorf("duration not mapped: %d", first.DurationMinutes)
	}

	second := records[1]
	if second.SongID != "" || second.SectionID != "" {
		t.Errorf("expected empty song/section ids for unlinked session, got %+v", second)
	}
	if second.TempoBPM != nil || second.AccuracyRating != nil {
		t.Errorf("expected nil optional fields, got %+v", second)
	}
}

func TestToStatsSessionsConvertsTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	svc := NewStatsService(nil, nil, nil, nil, loc)

	// 02:00 UTC on March 10 is still March 9 in New York
	practicedAt := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
	rows := []models.SessionWithDetails{
		{PracticeSession: models.PracticeSession{PracticedAt: practicedAt, DurationMinutes: 10}},
	}

	records := svc.toStatsSessions(rows)
	if got := records[0].PracticedAt.Format("2006-01-02"); got != "2024-03-09" {
		t.Errorf("expected local date 2024-03-09, got %s", got)
	}
}

func TestNewStatsServiceDefaultsLocation(t *testing.T) {
	svc := NewStatsService(nil, nil, nil, nil, nil)
	if svc.loc == nil {
		t.Fatal("expected a non-nil location")
	}
}
