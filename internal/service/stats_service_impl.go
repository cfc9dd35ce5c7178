package service

import (
	"context"
	"time"

	"github.com/avendel/fastrack/internal/domain"
	"github.com/avendel/fastrack/internal/repository"
)

// fullHistoryDays is the window used when no explicit range is requested.
const fullHistoryDays = 3650

type statsService struct {
	sessions repository.SessionRepo
	now      func() time.Time
}

// NewStatsService creates the history aggregation service.
func NewStatsService(sessions repository.SessionRepo, now func() time.Time) StatsService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &statsService{sessions: sessions, now: now}
}

func (s *statsService) Summary(ctx context.Context, days int) (*FastingStats, error) {
	if days <= 0 {
		days = fullHistoryDays
	}
	sessions, err := s.sessions.ListRecent(ctx, days)
	if err != nil {
		return nil, err
	}
	return aggregateStats(sessions, s.now()), nil
}

// aggregateStats computes totals over a session list. An open session
// contributes its live elapsed time to TotalFasted but is excluded from the
// completion rate and the average.
func aggregateStats(sessions []*domain.FastingSession, now time.Time) *FastingStats {
	stats := &FastingStats{
		ByType: make(map[domain.SessionType]int),
	}

	var closedTotal time.Duration
	var closedCount int

	for _, sess := range sessions {
		stats.TotalSessions++
		stats.ByType[sess.Type]++

		elapsed := sess.Elapsed(now)
		stats.TotalFasted += elapsed
		if elapsed > stats.LongestFast {
			stats.LongestFast = elapsed
		}

		switch sess.Status {
		case domain.SessionCompleted:
			stats.Completed++
			closedTotal += elapsed
			closedCount++
		case domain.SessionStopped:
			stats.Stopped++
			closedTotal += elapsed
			closedCount++
		default:
			stats.InProgress++
		}
	}

	if closedCount > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(closedCount)
		stats.AverageFast = closedTotal / time.Duration(closedCount)
	}

	return stats
}

type settingsService struct {
	settings repository.SettingsRepo
}

// NewSettingsService creates the preset settings service.
func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, settings *domain.Settings) error {
	return s.settings.Upsert(ctx, settings)
}
