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

func TestStatsService_Summary(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSessionRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	base := now.Add(-96 * time.Hour)

	fixtures := []*domain.FastingSession{
		testutil.NewTestSession(16*time.Hour,
			testutil.WithStartTime(base),
			testutil.WithSessionType(domain.SessionIntermittent),
			testutil.Completed(16*time.Hour)),
		testutil.NewTestSession(16*time.Hour,
			testutil.WithStartTime(base.Add(24*time.Hour)),
			testutil.WithSessionType(domain.SessionIntermittent),
			testutil.Completed(18*time.Hour)),
		testutil.NewTestSession(24*time.Hour,
			testutil.WithStartTime(base.Add(48*time.Hour)),
			testutil.WithSessionType(domain.SessionWater),
			testutil.Stopped(8*time.Hour)),
	}
	for _, f := range fixtures {
		require.NoError(t, repo.Create(ctx, f))
	}

	svc := NewStatsService(repo, func() time.Time { return now })
	stats, err := svc.Summary(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.Stopped)
	assert.Zero(t, stats.InProgress)
	assert.InDelta(t, 2.0/3.0, stats.CompletionRate, 1e-9)
	assert.Equal(t, 42*time.Hour, stats.TotalFasted)
	assert.Equal(t, 14*time.Hour, stats.AverageFast)
	assert.Equal(t, 18*time.Hour, stats.LongestFast)
	assert.Equal(t, 2, stats.ByType[domain.SessionIntermittent])
	assert.Equal(t, 1, stats.ByType[domain.SessionWater])
}

func TestStatsService_Summary_CountsOpenSessionElapsed(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSessionRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	open := testutil.NewTestSession(16*time.Hour, testutil.WithStartTime(now.Add(-2*time.Hour)))
	require.NoError(t, repo.Create(ctx, open))

	svc := NewStatsService(repo, func() time.Time { return now })
	stats, err := svc.Summary(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 2*time.Hour, stats.TotalFasted)
	// Open sessions never skew the closed-session averages.
	assert.Zero(t, stats.CompletionRate)
	assert.Zero(t, stats.AverageFast)
}

func TestStatsService_Summary_Empty(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewStatsService(repository.NewSQLiteSessionRepo(database), nil)

	stats, err := svc.Summary(context.Background(), 30)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSessions)
	assert.Zero(t, stats.CompletionRate)
	assert.Empty(t, stats.ByType)
}
