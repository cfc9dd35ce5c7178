package repository

import (
	"context"
	"errors"

	"github.com/avendel/fastrack/internal/domain"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSessionInProgress indicates an insert would create a second
	// active/paused session. Surfaced from the partial unique index.
	ErrSessionInProgress = errors.New("a fasting session is already in progress")
)

type SessionRepo interface {
	Create(ctx context.Context, s *domain.FastingSession) error
	GetByID(ctx context.Context, id string) (*domain.FastingSession, error)
	// GetCurrent returns the single active or paused session, or ErrNotFound.
	GetCurrent(ctx context.Context) (*domain.FastingSession, error)
	ListRecent(ctx context.Context, days int) ([]*domain.FastingSession, error)
	ListByStatus(ctx context.Context, status domain.SessionStatus) ([]*domain.FastingSession, error)
	ListByType(ctx context.Context, sessionType domain.SessionType) ([]*domain.FastingSession, error)
	Update(ctx context.Context, s *domain.FastingSession) error
	Delete(ctx context.Context, id string) error
}

type StreakRepo interface {
	Create(ctx context.Context, s *domain.Streak) error
	GetByType(ctx context.Context, streakType domain.StreakType) (*domain.Streak, error)
	List(ctx context.Context) ([]*domain.Streak, error)
	Update(ctx context.Context, s *domain.Streak) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}
