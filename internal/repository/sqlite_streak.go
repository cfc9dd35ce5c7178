package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avendel/fastrack/internal/db"
	"github.com/avendel/fastrack/internal/domain"
)

const streakColumns = `id, streak_type, current_streak, longest_streak,
	last_activity_date, total_activities, created_at, updated_at`

// SQLiteStreakRepo implements StreakRepo using a SQLite database.
type SQLiteStreakRepo struct {
	db db.DBTX
}

// NewSQLiteStreakRepo creates a new SQLiteStreakRepo.
func NewSQLiteStreakRepo(db db.DBTX) *SQLiteStreakRepo {
	return &SQLiteStreakRepo{db: db}
}

func (r *SQLiteStreakRepo) Create(ctx context.Context, s *domain.Streak) error {
	query := `INSERT INTO streaks (` + streakColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Type),
		s.CurrentStreak,
		s.LongestStreak,
		nullableTimeToString(s.LastActivityDate, time.RFC3339),
		s.TotalActivities,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting streak: %w", err)
	}
	return nil
}

func (r *SQLiteStreakRepo) GetByType(ctx context.Context, streakType domain.StreakType) (*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM streaks WHERE streak_type = ?`
	row := r.db.QueryRowContext(ctx, query, string(streakType))
	return r.scanStreak(row)
}

func (r *SQLiteStreakRepo) List(ctx context.Context) ([]*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM streaks ORDER BY streak_type`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing streaks: %w", err)
	}
	defer rows.Close()

	var streaks []*domain.Streak
	for rows.Next() {
		s, err := r.scanStreakRow(rows)
		if err != nil {
			return nil, err
		}
		streaks = append(streaks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating streaks: %w", err)
	}
	return streaks, nil
}

func (r *SQLiteStreakRepo) Update(ctx context.Context, s *domain.Streak) error {
	query := `UPDATE streaks SET
		current_streak = ?, longest_streak = ?, last_activity_date = ?,
		total_activities = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.CurrentStreak,
		s.LongestStreak,
		nullableTimeToString(s.LastActivityDate, time.RFC3339),
		s.TotalActivities,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating streak: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("streak %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStreakRepo) scanStreak(row *sql.Row) (*domain.Streak, error) {
	var s domain.Streak
	var streakType, createdStr, updatedStr string
	var lastActivityStr sql.NullString

	err := row.Scan(
		&s.ID, &streakType, &s.CurrentStreak, &s.LongestStreak,
		&lastActivityStr, &s.TotalActivities, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("streak: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning streak: %w", err)
	}

	return r.populateStreak(&s, streakType, createdStr, updatedStr, lastActivityStr)
}

func (r *SQLiteStreakRepo) scanStreakRow(rows *sql.Rows) (*domain.Streak, error) {
	var s domain.Streak
	var streakType, createdStr, updatedStr string
	var lastActivityStr sql.NullString

	err := rows.Scan(
		&s.ID, &streakType, &s.CurrentStreak, &s.LongestStreak,
		&lastActivityStr, &s.TotalActivities, &createdStr, &updatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning streak row: %w", err)
	}

	return r.populateStreak(&s, streakType, createdStr, updatedStr, lastActivityStr)
}

func (r *SQLiteStreakRepo) populateStreak(s *domain.Streak, streakType, createdStr, updatedStr string, lastActivityStr sql.NullString) (*domain.Streak, error) {
	s.Type = domain.StreakType(streakType)
	s.LastActivityDate = parseNullableTime(lastActivityStr, time.RFC3339)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return s, nil
}
