package service

import (
	"context"
	"errors"
	"time"

	"github.com/avendel/fastrack/internal/db"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/avendel/fastrack/internal/repository"
)

type streakService struct {
	streaks  repository.StreakRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewStreakService creates the streak service. A nil now falls back to the
// UTC wall clock.
func NewStreakService(streaks repository.StreakRepo, uow db.UnitOfWork, now func() time.Time, observers ...UseCaseObserver) StreakService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &streakService{
		streaks:  streaks,
		uow:      uow,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *streakService) Get(ctx context.Context, streakType domain.StreakType) (*domain.Streak, error) {
	return s.streaks.GetByType(ctx, streakType)
}

func (s *streakService) List(ctx context.Context) ([]*domain.Streak, error) {
	return s.streaks.List(ctx)
}

func (s *streakService) Record(ctx context.Context, streakType domain.StreakType) (streak *domain.Streak, err error) {
	defer s.observe(ctx, "record-activity", s.now(), map[string]any{"streak": string(streakType)}, &err)

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStreaks := repository.NewSQLiteStreakRepo(tx)
		if err := recordStreakActivity(ctx, txStreaks, streakType, now); err != nil {
			return err
		}
		var getErr error
		streak, getErr = txStreaks.GetByType(ctx, streakType)
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return streak, nil
}

func (s *streakService) Reset(ctx context.Context, streakType domain.StreakType) (streak *domain.Streak, err error) {
	defer s.observe(ctx, "reset-streak", s.now(), map[string]any{"streak": string(streakType)}, &err)

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStreaks := repository.NewSQLiteStreakRepo(tx)
		cur, err := txStreaks.GetByType(ctx, streakType)
		if err != nil {
			return err
		}
		cur.Reset(now)
		if err := txStreaks.Update(ctx, cur); err != nil {
			return err
		}
		streak = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return streak, nil
}

func (s *streakService) ActiveToday(ctx context.Context, streakType domain.StreakType) (bool, error) {
	streak, err := s.streaks.GetByType(ctx, streakType)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return streak.ActiveOn(s.now()), nil
}

func (s *streakService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  s.now().Sub(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	})
}
