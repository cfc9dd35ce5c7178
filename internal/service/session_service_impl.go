package service

import (
	"context"
	"errors"
	"time"

	"github.com/avendel/fastrack/internal/db"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/avendel/fastrack/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewSessionService creates the fasting-session lifecycle service. A nil now
// falls back to the UTC wall clock.
func NewSessionService(sessions repository.SessionRepo, uow db.UnitOfWork, now func() time.Time, observers ...UseCaseObserver) SessionService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &sessionService{
		sessions: sessions,
		uow:      uow,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) Start(ctx context.Context, sessionType domain.SessionType, planned time.Duration, note string) (sess *domain.FastingSession, err error) {
	defer s.observe(ctx, "start-session", s.now(), map[string]any{"type": string(sessionType)}, &err)

	sess, err = domain.NewFastingSession(uuid.New().String(), sessionType, planned, note, s.now())
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		// Check first for a friendly error; the partial unique index is the
		// backstop against racing writers.
		if _, err := txSessions.GetCurrent(ctx); err == nil {
			return repository.ErrSessionInProgress
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		return txSessions.Create(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Current(ctx context.Context) (*domain.FastingSession, error) {
	return s.sessions.GetCurrent(ctx)
}

func (s *sessionService) Pause(ctx context.Context) (sess *domain.FastingSession, err error) {
	defer s.observe(ctx, "pause-session", s.now(), nil, &err)
	sess, err = s.transition(ctx, (*domain.FastingSession).Pause)
	return sess, err
}

func (s *sessionService) Resume(ctx context.Context) (sess *domain.FastingSession, err error) {
	defer s.observe(ctx, "resume-session", s.now(), nil, &err)
	sess, err = s.transition(ctx, (*domain.FastingSession).Resume)
	return sess, err
}

func (s *sessionService) Stop(ctx context.Context) (sess *domain.FastingSession, err error) {
	defer s.observe(ctx, "stop-session", s.now(), nil, &err)
	sess, err = s.transition(ctx, (*domain.FastingSession).Stop)
	return sess, err
}

// Complete finalizes the open session and records the day's fasting activity
// on the streak within one transaction, so a crash cannot count a fast
// without finalizing it or vice versa.
func (s *sessionService) Complete(ctx context.Context) (sess *domain.FastingSession, err error) {
	defer s.observe(ctx, "complete-session", s.now(), nil, &err)

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txStreaks := repository.NewSQLiteStreakRepo(tx)

		cur, err := txSessions.GetCurrent(ctx)
		if err != nil {
			return err
		}
		if err := cur.Complete(now); err != nil {
			return err
		}
		if err := txSessions.Update(ctx, cur); err != nil {
			return err
		}
		sess = cur

		return recordStreakActivity(ctx, txStreaks, domain.StreakFasting, now)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.FastingSession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) ListRecent(ctx context.Context, days int) ([]*domain.FastingSession, error) {
	return s.sessions.ListRecent(ctx, days)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// transition applies a lifecycle method to the current session and persists
// the result, all within one transaction.
func (s *sessionService) transition(ctx context.Context, apply func(*domain.FastingSession, time.Time) error) (*domain.FastingSession, error) {
	var sess *domain.FastingSession
	now := s.now()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		cur, err := txSessions.GetCurrent(ctx)
		if err != nil {
			return err
		}
		if err := apply(cur, now); err != nil {
			return err
		}
		if err := txSessions.Update(ctx, cur); err != nil {
			return err
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  s.now().Sub(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	})
}

// recordStreakActivity applies today's activity to the streak for the given
// category, creating the row lazily on first use.
func recordStreakActivity(ctx context.Context, streaks repository.StreakRepo, streakType domain.StreakType, now time.Time) error {
	streak, err := streaks.GetByType(ctx, streakType)
	if errors.Is(err, repository.ErrNotFound) {
		streak = domain.NewStreak(uuid.New().String(), streakType, now)
		streak.RecordActivity(now)
		return streaks.Create(ctx, streak)
	}
	if err != nil {
		return err
	}
	streak.RecordActivity(now)
	return streaks.Update(ctx, streak)
}
