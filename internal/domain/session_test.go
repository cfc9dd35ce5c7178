package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, planned time.Duration) *FastingSession {
	t.Helper()
	s, err := NewFastingSession("sess-1", SessionIntermittent, planned, "", t0)
	require.NoError(t, err)
	return s
}

func TestNewFastingSession_InitialState(t *testing.T) {
	s := newTestSession(t, 16*time.Hour)

	assert.Equal(t, SessionActive, s.Status)
	assert.Equal(t, t0, s.StartTime)
	assert.Nil(t, s.EndTime)
	assert.Nil(t, s.PausedAt)
	assert.Zero(t, s.TotalPaused)
	assert.Zero(t, s.Actual)
	assert.True(t, s.IsOpen())
}

func TestNewFastingSession_RejectsNonPositivePlanned(t *testing.T) {
	_, err := NewFastingSession("sess-1", SessionCustom, 0, "", t0)
	assert.ErrorIs(t, err, ErrInvalidPlannedDuration)

	_, err = NewFastingSession("sess-1", SessionCustom, -time.Hour, "", t0)
	assert.ErrorIs(t, err, ErrInvalidPlannedDuration)
}

func TestElapsed_MonotonicWhileActive(t *testing.T) {
	s := newTestSession(t, 16*time.Hour)

	prev := time.Duration(-1)
	for _, offset := range []time.Duration{0, time.Second, time.Minute, time.Hour, 20 * time.Hour} {
		cur := s.Elapsed(t0.Add(offset))
		assert.GreaterOrEqual(t, cur, prev, "elapsed must not decrease as now advances")
		prev = cur
	}
	assert.Equal(t, 20*time.Hour, prev)
}

func TestElapsed_ClampsClockBeforeStart(t *testing.T) {
	s := newTestSession(t, time.Hour)
	assert.Zero(t, s.Elapsed(t0.Add(-time.Minute)))
}

func TestPause_FreezesElapsed(t *testing.T) {
	s := newTestSession(t, 16*time.Hour)

	require.NoError(t, s.Pause(t0.Add(30*time.Minute)))
	assert.Equal(t, SessionPaused, s.Status)
	require.NotNil(t, s.PausedAt)

	frozen := s.Elapsed(t0.Add(30 * time.Minute))
	assert.Equal(t, 30*time.Minute, frozen)
	// Much later, still paused: same value.
	assert.Equal(t, frozen, s.Elapsed(t0.Add(5*time.Hour)))
	assert.Equal(t, frozen, s.Elapsed(t0.Add(48*time.Hour)))
}

func TestResume_PreservesContinuity(t *testing.T) {
	s := newTestSession(t, 16*time.Hour)

	pauseAt := t0.Add(30 * time.Minute)
	before := s.Elapsed(pauseAt)
	require.NoError(t, s.Pause(pauseAt))

	resumeAt := pauseAt.Add(20 * time.Minute)
	require.NoError(t, s.Resume(resumeAt))
	assert.Equal(t, SessionActive, s.Status)
	assert.Nil(t, s.PausedAt)
	assert.Equal(t, 20*time.Minute, s.TotalPaused)

	// Immediately after resuming, no pause time has leaked into elapsed.
	assert.Equal(t, before, s.Elapsed(resumeAt))
}

func TestPauseResume_MultipleCyclesAccumulate(t *testing.T) {
	s := newTestSession(t, 16*time.Hour)

	require.NoError(t, s.Pause(t0.Add(1*time.Hour)))
	require.NoError(t, s.Resume(t0.Add(1*time.Hour+10*time.Minute)))
	require.NoError(t, s.Pause(t0.Add(2*time.Hour)))
	require.NoError(t, s.Resume(t0.Add(2*time.Hour+5*time.Minute)))

	assert.Equal(t, 15*time.Minute, s.TotalPaused)
	assert.Equal(t, 3*time.Hour-15*time.Minute, s.Elapsed(t0.Add(3*time.Hour)))
}

func TestProgress_SaturatesAtOne(t *testing.T) {
	s := newTestSession(t, time.Hour)

	assert.InDelta(t, 0.5, s.Progress(t0.Add(30*time.Minute)), 1e-9)
	assert.InDelta(t, 1.0, s.Progress(t0.Add(time.Hour)), 1e-9)
	assert.InDelta(t, 1.0, s.Progress(t0.Add(3*time.Hour)), 1e-9)
}

func TestProgress_ZeroPlannedGuard(t *testing.T) {
	// Unreachable through the constructor, but the query must stay total.
	s := &FastingSession{Status: SessionActive, StartTime: t0}
	assert.Zero(t, s.Progress(t0.Add(time.Hour)))
}

func TestRemaining_SaturatesAtZero(t *testing.T) {
	s := newTestSession(t, time.Hour)

	assert.Equal(t, 30*time.Minute, s.Remaining(t0.Add(30*time.Minute)))
	assert.Zero(t, s.Remaining(t0.Add(time.Hour)))
	assert.Zero(t, s.Remaining(t0.Add(2*time.Hour)))
}

func TestComplete_FinalizesOnce(t *testing.T) {
	s := newTestSession(t, time.Hour)

	endAt := t0.Add(70 * time.Minute)
	require.NoError(t, s.Complete(endAt))

	assert.Equal(t, SessionCompleted, s.Status)
	require.NotNil(t, s.EndTime)
	assert.Equal(t, endAt, *s.EndTime)
	assert.Equal(t, 70*time.Minute, s.Actual)
	assert.False(t, s.IsOpen())

	// Terminal finality: elapsed is pinned to Actual regardless of now.
	assert.Equal(t, 70*time.Minute, s.Elapsed(endAt.Add(24*time.Hour)))
	assert.Equal(t, 70*time.Minute, s.Elapsed(t0))
}

func TestStop_FromPausedUsesFrozenElapsed(t *testing.T) {
	s := newTestSession(t, 16*time.Hour)

	require.NoError(t, s.Pause(t0.Add(2*time.Hour)))
	require.NoError(t, s.Stop(t0.Add(6*time.Hour)))

	assert.Equal(t, SessionStopped, s.Status)
	assert.Nil(t, s.PausedAt)
	// The four hours spent paused before stopping do not count.
	assert.Equal(t, 2*time.Hour, s.Actual)
}

func TestTransitions_InvalidStatesRejected(t *testing.T) {
	s := newTestSession(t, time.Hour)

	// Resuming an active session.
	assert.ErrorIs(t, s.Resume(t0.Add(time.Minute)), ErrInvalidTransition)

	require.NoError(t, s.Pause(t0.Add(time.Minute)))
	// Pausing a paused session.
	assert.ErrorIs(t, s.Pause(t0.Add(2*time.Minute)), ErrInvalidTransition)

	require.NoError(t, s.Resume(t0.Add(2*time.Minute)))
	require.NoError(t, s.Complete(t0.Add(3*time.Minute)))

	// Terminal states permit nothing.
	assert.ErrorIs(t, s.Pause(t0.Add(4*time.Minute)), ErrInvalidTransition)
	assert.ErrorIs(t, s.Resume(t0.Add(4*time.Minute)), ErrInvalidTransition)
	assert.ErrorIs(t, s.Complete(t0.Add(4*time.Minute)), ErrInvalidTransition)
	assert.ErrorIs(t, s.Stop(t0.Add(4*time.Minute)), ErrInvalidTransition)
}

// Walks the worked one-hour example: pause at 30min, resume 20min later,
// query 10min after that.
func TestSession_WorkedExample(t *testing.T) {
	s := newTestSession(t, time.Hour)

	half := t0.Add(30 * time.Minute)
	assert.Equal(t, 30*time.Minute, s.Elapsed(half))
	assert.InDelta(t, 0.5, s.Progress(half), 1e-9)
	assert.Equal(t, 30*time.Minute, s.Remaining(half))

	require.NoError(t, s.Pause(half))
	assert.Equal(t, 30*time.Minute, s.Elapsed(t0.Add(50*time.Minute)))

	require.NoError(t, s.Resume(t0.Add(50*time.Minute)))
	assert.Equal(t, 20*time.Minute, s.TotalPaused)
	assert.Equal(t, 40*time.Minute, s.Elapsed(t0.Add(60*time.Minute)))
}
