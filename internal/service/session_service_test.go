package service

import (
	"context"
	"testing"
	"time"

	"github.com/avendel/fastrack/internal/domain"
	"github.com/avendel/fastrack/internal/repository"
	"github.com/avendel/fastrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionService(t *testing.T) (SessionService, *repository.SQLiteStreakRepo, *testutil.Clock) {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	svc := NewSessionService(
		repository.NewSQLiteSessionRepo(database),
		testutil.NewTestUoW(database),
		clock.Now,
	)
	return svc, repository.NewSQLiteStreakRepo(database), clock
}

func TestSessionService_StartAndCurrent(t *testing.T) {
	svc, _, clock := setupSessionService(t)
	ctx := context.Background()

	sess, err := svc.Start(ctx, domain.SessionIntermittent, 16*time.Hour, "morning fast")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, sess.Status)
	assert.True(t, sess.StartTime.Equal(clock.Now()))

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, current.ID)
}

func TestSessionService_Start_RejectsSecondOpen(t *testing.T) {
	svc, _, _ := setupSessionService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, domain.SessionWater, 24*time.Hour, "")
	require.NoError(t, err)

	_, err = svc.Start(ctx, domain.SessionJuice, 12*time.Hour, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrSessionInProgress)
}

func TestSessionService_Start_RejectsNonPositivePlanned(t *testing.T) {
	svc, _, _ := setupSessionService(t)

	_, err := svc.Start(context.Background(), domain.SessionCustom, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidPlannedDuration)
}

func TestSessionService_PauseResumeLifecycle(t *testing.T) {
	svc, _, clock := setupSessionService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, domain.SessionIntermittent, 16*time.Hour, "")
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	paused, err := svc.Pause(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionPaused, paused.Status)

	clock.Advance(30 * time.Minute)
	resumed, err := svc.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, resumed.Status)
	assert.Equal(t, 30*time.Minute, resumed.TotalPaused)

	// Pause state survived the round-trip: elapsed excludes the pause.
	assert.Equal(t, 2*time.Hour, resumed.Elapsed(clock.Now()))
}

func TestSessionService_Pause_InvalidFromPaused(t *testing.T) {
	svc, _, clock := setupSessionService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, domain.SessionWater, time.Hour, "")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = svc.Pause(ctx)
	require.NoError(t, err)

	_, err = svc.Pause(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSessionService_TransitionsWithoutOpenSession(t *testing.T) {
	svc, _, _ := setupSessionService(t)
	ctx := context.Background()

	_, err := svc.Pause(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Complete(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Stop(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionService_Complete_FinalizesAndUpdatesStreak(t *testing.T) {
	svc, streaks, clock := setupSessionService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, domain.SessionIntermittent, 16*time.Hour, "")
	require.NoError(t, err)

	clock.Advance(16 * time.Hour)
	done, err := svc.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, done.Status)
	assert.Equal(t, 16*time.Hour, done.Actual)
	require.NotNil(t, done.EndTime)

	// Streak was created lazily and credited in the same transaction.
	streak, err := streaks.GetByType(ctx, domain.StreakFasting)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.TotalActivities)

	// A new session can be started afterwards.
	_, err = svc.Start(ctx, domain.SessionWater, time.Hour, "")
	require.NoError(t, err)
}

func TestSessionService_Complete_ConsecutiveDaysExtendStreak(t *testing.T) {
	svc, streaks, clock := setupSessionService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Start(ctx, domain.SessionIntermittent, 16*time.Hour, "")
		require.NoError(t, err)
		clock.Advance(16 * time.Hour)
		_, err = svc.Complete(ctx)
		require.NoError(t, err)
		clock.Advance(8 * time.Hour) // next day, same start hour
	}

	streak, err := streaks.GetByType(ctx, domain.StreakFasting)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
	assert.Equal(t, 3, streak.TotalActivities)
}

func TestSessionService_Stop_DoesNotTouchStreak(t *testing.T) {
	svc, streaks, clock := setupSessionService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, domain.SessionWater, 24*time.Hour, "")
	require.NoError(t, err)

	clock.Advance(3 * time.Hour)
	stopped, err := svc.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStopped, stopped.Status)
	assert.Equal(t, 3*time.Hour, stopped.Actual)

	_, err = streaks.GetByType(ctx, domain.StreakFasting)
	assert.ErrorIs(t, err, repository.ErrNotFound, "aborted fasts do not count")
}

// Forcing the streak write to fail must roll the session finalization back
// too: both writes share one transaction.
func TestSessionService_Complete_RollsBackOnStreakFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	clock := testutil.NewClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	sessions := repository.NewSQLiteSessionRepo(database)
	svc := NewSessionService(sessions, testutil.NewTestUoW(database), clock.Now)
	ctx := context.Background()

	_, err := svc.Start(ctx, domain.SessionWater, time.Hour, "")
	require.NoError(t, err)

	// Sabotage the streaks table so the in-tx streak insert fails.
	_, err = database.Exec(`DROP TABLE streaks`)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = svc.Complete(ctx)
	require.Error(t, err)

	// The session must still be open: finalization rolled back.
	current, err := sessions.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, current.Status)
}
