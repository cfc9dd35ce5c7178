package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTransition indicates a lifecycle operation was called on a
	// session whose status does not permit it.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrInvalidPlannedDuration indicates a session was created with a
	// non-positive planned duration.
	ErrInvalidPlannedDuration = errors.New("planned duration must be positive")
)

// FastingSession is one timed attempt at fasting for a planned duration.
//
// All time-derived values (Elapsed, Remaining, Progress) are pure functions
// of the stored fields and an explicit now argument; they never mutate the
// session. Lifecycle methods guard their own preconditions and return
// ErrInvalidTransition when called from a status that does not permit them.
// Completed and stopped are terminal.
type FastingSession struct {
	ID     string
	Type   SessionType
	Status SessionStatus

	StartTime time.Time
	// EndTime is set exactly once, together with Actual, when the session
	// reaches a terminal status.
	EndTime *time.Time
	// PausedAt marks the most recent pause; present only while paused.
	PausedAt *time.Time
	// TotalPaused accumulates completed pause intervals only. The open
	// interval of a still-paused session is excluded by construction: the
	// elapsed term is anchored at PausedAt and does not advance.
	TotalPaused time.Duration

	Planned time.Duration
	// Actual is finalized once on the transition to completed/stopped and
	// zero before that.
	Actual time.Duration

	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFastingSession creates a session in active status starting at now.
func NewFastingSession(id string, sessionType SessionType, planned time.Duration, note string, now time.Time) (*FastingSession, error) {
	if planned <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidPlannedDuration, planned)
	}
	return &FastingSession{
		ID:        id,
		Type:      sessionType,
		Status:    SessionActive,
		StartTime: now,
		Planned:   planned,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOpen reports whether the session is still in progress (active or paused).
func (s *FastingSession) IsOpen() bool {
	return s.Status == SessionActive || s.Status == SessionPaused
}

// Pause freezes the session at now. Only valid while active.
func (s *FastingSession) Pause(now time.Time) error {
	if s.Status != SessionActive {
		return fmt.Errorf("%w: cannot pause %s session", ErrInvalidTransition, s.Status)
	}
	t := now
	s.PausedAt = &t
	s.Status = SessionPaused
	s.UpdatedAt = now
	return nil
}

// Resume folds the open pause interval into TotalPaused and reactivates the
// session. Only valid while paused.
func (s *FastingSession) Resume(now time.Time) error {
	if s.Status != SessionPaused || s.PausedAt == nil {
		return fmt.Errorf("%w: cannot resume %s session", ErrInvalidTransition, s.Status)
	}
	if d := now.Sub(*s.PausedAt); d > 0 {
		s.TotalPaused += d
	}
	s.PausedAt = nil
	s.Status = SessionActive
	s.UpdatedAt = now
	return nil
}

// Complete finalizes the session as a successful fast.
func (s *FastingSession) Complete(now time.Time) error {
	return s.end(SessionCompleted, now)
}

// Stop finalizes the session as an early termination.
func (s *FastingSession) Stop(now time.Time) error {
	return s.end(SessionStopped, now)
}

func (s *FastingSession) end(status SessionStatus, now time.Time) error {
	if !s.IsOpen() {
		return fmt.Errorf("%w: cannot end %s session", ErrInvalidTransition, s.Status)
	}
	s.Actual = s.Elapsed(now)
	t := now
	s.EndTime = &t
	s.PausedAt = nil
	s.Status = status
	s.UpdatedAt = now
	return nil
}

// Elapsed returns the fasting time accumulated by now, excluding pauses.
// While paused the value is anchored at PausedAt and does not advance.
// After the session ends it is the finalized Actual duration.
func (s *FastingSession) Elapsed(now time.Time) time.Duration {
	switch s.Status {
	case SessionActive:
		return clampNonNegative(now.Sub(s.StartTime) - s.TotalPaused)
	case SessionPaused:
		return clampNonNegative(s.PausedAt.Sub(s.StartTime) - s.TotalPaused)
	default:
		if s.Actual > 0 {
			return s.Actual
		}
		return clampNonNegative(now.Sub(s.StartTime) - s.TotalPaused)
	}
}

// Remaining returns the time left until the planned duration is reached.
// Saturates at zero once the fast overruns its plan.
func (s *FastingSession) Remaining(now time.Time) time.Duration {
	return clampNonNegative(s.Planned - s.Elapsed(now))
}

// Progress returns completion as a fraction in [0, 1].
func (s *FastingSession) Progress(now time.Time) float64 {
	if s.Planned <= 0 {
		return 0
	}
	p := float64(s.Elapsed(now)) / float64(s.Planned)
	if p > 1 {
		return 1
	}
	return p
}

func clampNonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
