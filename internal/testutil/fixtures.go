package testutil

import (
	"time"

	"github.com/avendel/fastrack/internal/domain"
	"github.com/google/uuid"
)

// Session options
type SessionOption func(*domain.FastingSession)

func WithSessionType(st domain.SessionType) SessionOption {
	return func(s *domain.FastingSession) {
		s.Type = st
	}
}

func WithStartTime(t time.Time) SessionOption {
	return func(s *domain.FastingSession) {
		s.StartTime = t
		s.CreatedAt = t
		s.UpdatedAt = t
	}
}

func WithNote(note string) SessionOption {
	return func(s *domain.FastingSession) {
		s.Note = note
	}
}

// Completed marks the fixture as completed after the given fasted duration.
func Completed(actual time.Duration) SessionOption {
	return func(s *domain.FastingSession) {
		end := s.StartTime.Add(actual)
		s.Status = domain.SessionCompleted
		s.Actual = actual
		s.EndTime = &end
		s.UpdatedAt = end
	}
}

// Stopped marks the fixture as stopped early after the given fasted duration.
func Stopped(actual time.Duration) SessionOption {
	return func(s *domain.FastingSession) {
		end := s.StartTime.Add(actual)
		s.Status = domain.SessionStopped
		s.Actual = actual
		s.EndTime = &end
		s.UpdatedAt = end
	}
}

// NewTestSession builds an active water-fast session fixture starting now.
func NewTestSession(planned time.Duration, opts ...SessionOption) *domain.FastingSession {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.FastingSession{
		ID:        uuid.New().String(),
		Type:      domain.SessionWater,
		Status:    domain.SessionActive,
		StartTime: now,
		Planned:   planned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Streak options
type StreakOption func(*domain.Streak)

func WithCounts(current, longest, total int) StreakOption {
	return func(s *domain.Streak) {
		s.CurrentStreak = current
		s.LongestStreak = longest
		s.TotalActivities = total
	}
}

func WithLastActivity(t time.Time) StreakOption {
	return func(s *domain.Streak) {
		s.LastActivityDate = &t
	}
}

// NewTestStreak builds a streak fixture for the given category.
func NewTestStreak(streakType domain.StreakType, opts ...StreakOption) *domain.Streak {
	now := time.Now().UTC().Truncate(time.Second)
	s := domain.NewStreak(uuid.New().String(), streakType, now)
	for _, opt := range opts {
		opt(s)
	}
	return s
}
