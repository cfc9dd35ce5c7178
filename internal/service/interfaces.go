package service

import (
	"context"
	"time"

	"github.com/avendel/fastrack/internal/domain"
)

type SessionService interface {
	// Start opens a new fasting session. Fails with
	// repository.ErrSessionInProgress while another session is open.
	Start(ctx context.Context, sessionType domain.SessionType, planned time.Duration, note string) (*domain.FastingSession, error)
	// Current returns the open (active or paused) session, or
	// repository.ErrNotFound when no fast is in progress.
	Current(ctx context.Context) (*domain.FastingSession, error)
	Pause(ctx context.Context) (*domain.FastingSession, error)
	Resume(ctx context.Context) (*domain.FastingSession, error)
	// Complete finalizes the open session as a successful fast and updates
	// the fasting streak in the same transaction.
	Complete(ctx context.Context) (*domain.FastingSession, error)
	// Stop finalizes the open session as an early termination. The streak
	// is not touched.
	Stop(ctx context.Context) (*domain.FastingSession, error)
	GetByID(ctx context.Context, id string) (*domain.FastingSession, error)
	ListRecent(ctx context.Context, days int) ([]*domain.FastingSession, error)
	Delete(ctx context.Context, id string) error
}

type StreakService interface {
	Get(ctx context.Context, streakType domain.StreakType) (*domain.Streak, error)
	List(ctx context.Context) ([]*domain.Streak, error)
	// Record registers today's qualifying activity, creating the streak
	// lazily on first use.
	Record(ctx context.Context, streakType domain.StreakType) (*domain.Streak, error)
	Reset(ctx context.Context, streakType domain.StreakType) (*domain.Streak, error)
	ActiveToday(ctx context.Context, streakType domain.StreakType) (bool, error)
}

// FastingStats aggregates a user's fasting history.
type FastingStats struct {
	TotalSessions  int
	Completed      int
	Stopped        int
	InProgress     int
	CompletionRate float64 // completed / closed, in [0, 1]
	TotalFasted    time.Duration
	AverageFast    time.Duration
	LongestFast    time.Duration
	ByType         map[domain.SessionType]int
}

type StatsService interface {
	// Summary aggregates the sessions started in the last given days;
	// days <= 0 means the full history window (10 years).
	Summary(ctx context.Context, days int) (*FastingStats, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) error
}
