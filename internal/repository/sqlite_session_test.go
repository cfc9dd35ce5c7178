package repository

import (
	"context"
	"testing"
	"time"

	"github.com/avendel/fastrack/internal/domain"
	"github.com/avendel/fastrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestRepo(t *testing.T) *SQLiteSessionRepo {
	t.Helper()
	return NewSQLiteSessionRepo(testutil.NewTestDB(t))
}

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(16*time.Hour,
		testutil.WithSessionType(domain.SessionIntermittent),
		testutil.WithNote("first 16:8 attempt"),
	)
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.ID)
	assert.Equal(t, domain.SessionIntermittent, fetched.Type)
	assert.Equal(t, domain.SessionActive, fetched.Status)
	assert.Equal(t, 16*time.Hour, fetched.Planned)
	assert.Equal(t, "first 16:8 attempt", fetched.Note)
	assert.True(t, fetched.StartTime.Equal(sess.StartTime))
	assert.Nil(t, fetched.EndTime)
	assert.Nil(t, fetched.PausedAt)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_GetCurrent(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	done := testutil.NewTestSession(time.Hour, testutil.Completed(time.Hour))
	require.NoError(t, repo.Create(ctx, done))

	_, err := repo.GetCurrent(ctx)
	assert.ErrorIs(t, err, ErrNotFound, "closed sessions are not current")

	open := testutil.NewTestSession(16 * time.Hour)
	require.NoError(t, repo.Create(ctx, open))

	current, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, open.ID, current.ID)
}

func TestSessionRepo_SecondOpenSessionRejected(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	first := testutil.NewTestSession(16 * time.Hour)
	require.NoError(t, repo.Create(ctx, first))

	second := testutil.NewTestSession(24 * time.Hour)
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionInProgress)
}

func TestSessionRepo_Update_RoundTripsPauseState(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(16 * time.Hour)
	require.NoError(t, repo.Create(ctx, sess))

	pauseAt := sess.StartTime.Add(2 * time.Hour)
	require.NoError(t, sess.Pause(pauseAt))
	require.NoError(t, repo.Update(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionPaused, fetched.Status)
	require.NotNil(t, fetched.PausedAt)
	assert.True(t, fetched.PausedAt.Equal(pauseAt))

	require.NoError(t, fetched.Resume(pauseAt.Add(30*time.Minute)))
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, again.Status)
	assert.Nil(t, again.PausedAt)
	assert.Equal(t, 30*time.Minute, again.TotalPaused)
}

func TestSessionRepo_Update_NotFound(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	ghost := testutil.NewTestSession(time.Hour)
	err := repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_ListByStatus(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second).Add(-72 * time.Hour)
	s1 := testutil.NewTestSession(time.Hour, testutil.WithStartTime(base), testutil.Completed(time.Hour))
	s2 := testutil.NewTestSession(time.Hour, testutil.WithStartTime(base.Add(24*time.Hour)), testutil.Stopped(20*time.Minute))
	s3 := testutil.NewTestSession(time.Hour, testutil.WithStartTime(base.Add(48*time.Hour)), testutil.Completed(time.Hour))
	for _, s := range []*domain.FastingSession{s1, s2, s3} {
		require.NoError(t, repo.Create(ctx, s))
	}

	completed, err := repo.ListByStatus(ctx, domain.SessionCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 2)
	// Most recent first.
	assert.Equal(t, s3.ID, completed[0].ID)
	assert.Equal(t, s1.ID, completed[1].ID)

	stopped, err := repo.ListByStatus(ctx, domain.SessionStopped)
	require.NoError(t, err)
	require.Len(t, stopped, 1)
	assert.Equal(t, s2.ID, stopped[0].ID)
}

func TestSessionRepo_ListByType(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second).Add(-48 * time.Hour)
	water := testutil.NewTestSession(time.Hour,
		testutil.WithStartTime(base),
		testutil.WithSessionType(domain.SessionWater),
		testutil.Completed(time.Hour))
	juice := testutil.NewTestSession(time.Hour,
		testutil.WithStartTime(base.Add(24*time.Hour)),
		testutil.WithSessionType(domain.SessionJuice),
		testutil.Completed(time.Hour))
	require.NoError(t, repo.Create(ctx, water))
	require.NoError(t, repo.Create(ctx, juice))

	list, err := repo.ListByType(ctx, domain.SessionJuice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, juice.ID, list[0].ID)
}

func TestSessionRepo_ListRecent(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	old := testutil.NewTestSession(time.Hour,
		testutil.WithStartTime(time.Now().UTC().Truncate(time.Second).Add(-30*24*time.Hour)),
		testutil.Completed(time.Hour))
	recent := testutil.NewTestSession(time.Hour,
		testutil.WithStartTime(time.Now().UTC().Truncate(time.Second).Add(-24*time.Hour)),
		testutil.Completed(time.Hour))
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))

	list, err := repo.ListRecent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, recent.ID, list[0].ID)
}

func TestSessionRepo_Delete(t *testing.T) {
	repo := sessionTestRepo(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(time.Hour, testutil.Completed(time.Hour))
	require.NoError(t, repo.Create(ctx, sess))
	require.NoError(t, repo.Delete(ctx, sess.ID))

	_, err := repo.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
