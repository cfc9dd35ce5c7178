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

func streakTestRepo(t *testing.T) *SQLiteStreakRepo {
	t.Helper()
	return NewSQLiteStreakRepo(testutil.NewTestDB(t))
}

func TestStreakRepo_CreateAndGetByType(t *testing.T) {
	repo := streakTestRepo(t)
	ctx := context.Background()

	streak := testutil.NewTestStreak(domain.StreakFasting)
	require.NoError(t, repo.Create(ctx, streak))

	fetched, err := repo.GetByType(ctx, domain.StreakFasting)
	require.NoError(t, err)
	assert.Equal(t, streak.ID, fetched.ID)
	assert.Equal(t, domain.StreakFasting, fetched.Type)
	assert.Zero(t, fetched.CurrentStreak)
	assert.Nil(t, fetched.LastActivityDate)
}

func TestStreakRepo_GetByType_NotFound(t *testing.T) {
	repo := streakTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByType(ctx, domain.StreakWaterIntake)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStreakRepo_OneRowPerType(t *testing.T) {
	repo := streakTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestStreak(domain.StreakFasting)))
	err := repo.Create(ctx, testutil.NewTestStreak(domain.StreakFasting))
	assert.Error(t, err, "streak_type is unique")
}

func TestStreakRepo_Update_RoundTrip(t *testing.T) {
	repo := streakTestRepo(t)
	ctx := context.Background()

	streak := testutil.NewTestStreak(domain.StreakFasting)
	require.NoError(t, repo.Create(ctx, streak))

	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	streak.RecordActivity(day)
	streak.RecordActivity(day.AddDate(0, 0, 1))
	require.NoError(t, repo.Update(ctx, streak))

	fetched, err := repo.GetByType(ctx, domain.StreakFasting)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.CurrentStreak)
	assert.Equal(t, 2, fetched.LongestStreak)
	assert.Equal(t, 2, fetched.TotalActivities)
	require.NotNil(t, fetched.LastActivityDate)
	assert.True(t, fetched.LastActivityDate.Equal(day.AddDate(0, 0, 1)))
}

func TestStreakRepo_Update_NotFound(t *testing.T) {
	repo := streakTestRepo(t)
	ctx := context.Background()

	err := repo.Update(ctx, testutil.NewTestStreak(domain.StreakDieting))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStreakRepo_List(t *testing.T) {
	repo := streakTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestStreak(domain.StreakWaterIntake)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStreak(domain.StreakFasting)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Ordered by streak_type.
	assert.Equal(t, domain.StreakFasting, list[0].Type)
	assert.Equal(t, domain.StreakWaterIntake, list[1].Type)
}
