package service

import (
	"fmt"
	"time"

	"sessionlog/internal/models"
	"sessionlog/internal/repository"
	"sessionlog/internal/stats"
)

// Dashboard is the payload behind the main dashboard view
type Dashboard struct {
	Heatmap        map[string]int              `json:"heatmap"`
	Stats          DashboardTotals             `json:"stats"`
	RecentSessions []models.SessionWithDetails `json:"recentSessions"`
}

// DashboardTotals summarizes practice across the whole account
type DashboardTotals struct {
	TotalMinutes       int `json:"totalMinutes"`
	CurrentStreak      int `json:"currentStreak"`
	LongestStreak      int `json:"longestStreak"`
	WeeklySessionCount int `json:"weeklySessionCount"`
}

// Analytics is the payload behind the analytics view
type Analytics struct {
	PracticeByDay      []stats.DayMinutes   `json:"practiceByDay"`
	PracticeByMonth    []stats.MonthMinutes `json:"practiceByMonth"`
	TopSongs           []stats.SongMinutes  `json:"topSongs"`
	AvgDurationByMonth []stats.MonthAverage `json:"avgDurationByMonth"`
}

// SongStats is the per-song progress payload
type SongStats struct {
	Song             models.SongWithSections `json:"song"`
	TempoProgress    []stats.TempoPoint      `json:"tempoProgress"`
	AccuracyTrend    []stats.AccuracyPoint   `json:"accuracyTrend"`
	TotalMinutes     int                     `json:"totalMinutes"`
	SessionCount     int                     `json:"sessionCount"`
	SectionBreakdown []stats.SectionUsage    `json:"sectionBreakdown"`
}

// GoalProgress pairs an active goal with its progress in the current window
type GoalProgress struct {
	Goal       models.Goal `json:"goal"`
	Current    int         `json:"current"`
	Percentage int         `json:"percentage"`
}

// PublicProfile is the payload for a shared profile page
type PublicProfile struct {
	Profile *models.Profile      `json:"profile"`
	Heatmap map[string]int       `json:"heatmap"`
	Stats   PublicProfileTotals  `json:"stats"`
	Songs   []models.SongSummary `json:"songs"`
}

// PublicProfileTotals is the reduced stat set shown to visitors
type PublicProfileTotals struct {
	TotalMinutes  int `json:"totalMinutes"`
	CurrentStreak int `json:"currentStreak"`
	TotalSessions int `json:"totalSessions"`
}

// WeekSummary summarizes the trailing week for the digest email
type WeekSummary struct {
	Minutes       int
	Sessions      int
	CurrentStreak int
}

// StatsService feeds stored practice sessions through the stats core and
// assembles the read-side payloads
type StatsService struct {
	sessionRepo *repository.SessionRepository
	songRepo    *repository.SongRepository
	goalRepo    *repository.GoalRepository
	profileRepo *repository.ProfileRepository

	// Calendar days for heatmaps, streaks and goal windows resolve in
	// this location, not per request.
	loc *time.Location
	now func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(sessionRepo *repository.SessionRepository, songRepo *repository.SongRepository, goalRepo *repository.GoalRepository, profileRepo *repository.ProfileRepository, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{
		sessionRepo: sessionRepo,
		songRepo:    songRepo,
		goalRepo:    goalRepo,
		profileRepo: profileRepo,
		loc:         loc,
		now:         time.Now,
	}
}

// Dashboard assembles the heatmap, streaks, totals and recent sessions
func (s *StatsService) Dashboard(userID string) (*Dashboard, error) {
	all, err := s.sessionRepo.ListSince(userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	now := s.now().In(s.loc)
	yearAgo := stats.StartOfDay(now.AddDate(-1, 0, 0))
	records := s.toStatsSessions(all)

	heatmap := stats.Heatmap(records, yearAgo)
	dates := stats.PracticeDates(heatmap)

	weekStart := stats.WeekStart(now)
	weeklyCount := 0
	for _, record := range records {
		if !record.PracticedAt.Before(weekStart) {
			weeklyCount++
		}
	}

	recent, err := s.sessionRepo.List(userID, models.SessionFilter{Limit: 10})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent sessions: %w", err)
	}

	return &Dashboard{
		Heatmap: heatmap,
		Stats: DashboardTotals{
			TotalMinutes:       stats.TotalMinutes(records),
			CurrentStreak:      stats.CurrentStreak(dates, now),
			LongestStreak:      stats.LongestStreak(dates),
			WeeklySessionCount: weeklyCount,
		},
		RecentSessions: recent,
	}, nil
}

// Analytics assembles the day-of-week, monthly, top-song and average
// duration breakdowns over the full history
func (s *StatsService) Analytics(userID string) (*Analytics, error) {
	all, err := s.sessionRepo.ListSince(userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	now := s.now().In(s.loc)
	records := s.toStatsSessions(all)

	return &Analytics{
		PracticeByDay:      stats.ByDayOfWeek(records),
		PracticeByMonth:    stats.ByMonth(records, now),
		TopSongs:           stats.TopSongs(records),
		AvgDurationByMonth: stats.AvgDurationByMonth(records, now),
	}, nil
}

// SongStats assembles tempo progress, accuracy trend and the section
// breakdown for one song
func (s *StatsService) SongStats(userID, songID string) (*SongStats, error) {
	song, err := s.songRepo.GetSongWithSections(userID, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	if song == nil {
		return nil, ErrSongNotFound
	}

	sessions, err := s.sessionRepo.ListForSong(userID, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	records := s.toStatsSessions(sessions)

	return &SongStats{
		Song:             *song,
		TempoProgress:    stats.TempoSeries(records),
		AccuracyTrend:    stats.AccuracySeries(records),
		TotalMinutes:     stats.TotalMinutes(records),
		SessionCount:     len(records),
		SectionBreakdown: stats.SectionBreakdown(records),
	}, nil
}

// GoalProgressAll evaluates every active goal against the current daily
// and weekly windows, preserving goal order
func (s *StatsService) GoalProgressAll(userID string) ([]GoalProgress, error) {
	goals, err := s.goalRepo.ListActive(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	progress := []GoalProgress{}
	if len(goals) == 0 {
		return progress, nil
	}

	now := s.now().In(s.loc)
	todayStart := stats.StartOfDay(now)
	weekStart := stats.WeekStart(now)

	weekRows, err := s.sessionRepo.ListSince(userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	weekSessions := s.toStatsSessions(weekRows)

	todaySessions := []stats.Session{}
	for _, record := range weekSessions {
		if !record.PracticedAt.Before(todayStart) {
			todaySessions = append(todaySessions, record)
		}
	}

	for _, goal := range goals {
		current := stats.GoalCurrent(goal.Type, todaySessions, weekSessions)
		progress = append(progress, GoalProgress{
			Goal:       goal,
			Current:    current,
			Percentage: stats.GoalPercentage(current, goal.TargetValue),
		})
	}

	return progress, nil
}

// PublicProfileStats assembles the visitor-facing payload for a public
// profile, or ErrProfileNotFound if the username is unknown or private
func (s *StatsService) PublicProfileStats(username string) (*PublicProfile, error) {
	profile, err := s.profileRepo.GetPublicByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	all, err := s.sessionRepo.ListSince(profile.UserID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	now := s.now().In(s.loc)
	yearAgo := stats.StartOfDay(now.AddDate(-1, 0, 0))
	records := s.toStatsSessions(all)

	heatmap := stats.Heatmap(records, yearAgo)

	songs, err := s.songRepo.ListSongSummaries(profile.UserID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load songs: %w", err)
	}

	return &PublicProfile{
		Profile: profile,
		Heatmap: heatmap,
		Stats: PublicProfileTotals{
			TotalMinutes:  stats.TotalMinutes(records),
			CurrentStreak: stats.CurrentStreak(stats.PracticeDates(heatmap), now),
			TotalSessions: len(records),
		},
		Songs: songs,
	}, nil
}

// WeekInReview summarizes the past seven days for the digest email
func (s *StatsService) WeekInReview(userID string) (*WeekSummary, error) {
	now := s.now().In(s.loc)
	since := stats.StartOfDay(now.AddDate(0, 0, -7))

	rows, err := s.sessionRepo.ListSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	records := s.toStatsSessions(rows)

	// The streak needs the full history, not just the week
	all, err := s.sessionRepo.ListSince(userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	dates := stats.PracticeDates(stats.Heatmap(s.toStatsSessions(all), time.Time{}))

	return &WeekSummary{
		Minutes:       stats.TotalMinutes(records),
		Sessions:      len(records),
		CurrentStreak: stats.CurrentStreak(dates, now),
	}, nil
}

// toStatsSessions converts stored rows to stats records in the service's
// timezone, so bucketing by calendar day is consistent across views
func (s *StatsService) toStatsSessions(rows []models.SessionWithDetails) []stats.Session {
	records := make([]stats.Session, 0, len(rows))
	for _, row := range rows {
		record := stats.Session{
			PracticedAt:     row.PracticedAt.In(s.loc),
			DurationMinutes: row.DurationMinutes,
			TempoBPM:        row.TempoBPM,
			AccuracyRating:  row.AccuracyRating,
		}
		if row.Song != nil {
			record.SongID = row.Song.ID
			record.SongTitle = row.Song.Title
		}
		if row.Section != nil {
			record.SectionID = row.Section.ID
			record.SectionName = row.Section.Name
		}
		records = append(records, record)
	}
	return records
}
