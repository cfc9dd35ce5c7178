package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/avendel/fastrack/internal/db"
	"github.com/avendel/fastrack/internal/domain"
)

const sessionColumns = `id, session_type, status, start_time, end_time, paused_at,
	total_paused_sec, planned_sec, actual_sec, note, created_at, updated_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.FastingSession) error {
	query := `INSERT INTO fasting_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Type),
		string(s.Status),
		s.StartTime.Format(time.RFC3339),
		nullableTimeToString(s.EndTime, time.RFC3339),
		nullableTimeToString(s.PausedAt, time.RFC3339),
		durationToSec(s.TotalPaused),
		durationToSec(s.Planned),
		durationToSec(s.Actual),
		s.Note,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isSingleOpenViolation(err) {
			return fmt.Errorf("creating fasting session: %w", ErrSessionInProgress)
		}
		return fmt.Errorf("inserting fasting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.FastingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM fasting_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) GetCurrent(ctx context.Context) (*domain.FastingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM fasting_sessions
		WHERE status IN ('active','paused') LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) ListRecent(ctx context.Context, days int) ([]*domain.FastingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM fasting_sessions
		WHERE start_time >= date('now', ? || ' days')
		ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, fmt.Sprintf("-%d", days))
	if err != nil {
		return nil, fmt.Errorf("listing recent sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListByStatus(ctx context.Context, status domain.SessionStatus) ([]*domain.FastingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM fasting_sessions
		WHERE status = ? ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("listing sessions by status: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListByType(ctx context.Context, sessionType domain.SessionType) ([]*domain.FastingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM fasting_sessions
		WHERE session_type = ? ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, query, string(sessionType))
	if err != nil {
		return nil, fmt.Errorf("listing sessions by type: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.FastingSession) error {
	query := `UPDATE fasting_sessions SET
		session_type = ?, status = ?, start_time = ?, end_time = ?, paused_at = ?,
		total_paused_sec = ?, planned_sec = ?, actual_sec = ?, note = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.Type),
		string(s.Status),
		s.StartTime.Format(time.RFC3339),
		nullableTimeToString(s.EndTime, time.RFC3339),
		nullableTimeToString(s.PausedAt, time.RFC3339),
		durationToSec(s.TotalPaused),
		durationToSec(s.Planned),
		durationToSec(s.Actual),
		s.Note,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		if isSingleOpenViolation(err) {
			return fmt.Errorf("updating fasting session: %w", ErrSessionInProgress)
		}
		return fmt.Errorf("updating fasting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("fasting session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM fasting_sessions WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting fasting session: %w", err)
	}
	return nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.FastingSession, error) {
	var s domain.FastingSession
	var sessionType, status, startStr, createdStr, updatedStr string
	var endStr, pausedStr sql.NullString
	var totalPausedSec, plannedSec, actualSec int64

	err := row.Scan(
		&s.ID, &sessionType, &status, &startStr, &endStr, &pausedStr,
		&totalPausedSec, &plannedSec, &actualSec, &s.Note, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("fasting session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning fasting session: %w", err)
	}

	return r.populateSession(&s, sessionType, status, startStr, createdStr, updatedStr, endStr, pausedStr, totalPausedSec, plannedSec, actualSec)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.FastingSession, error) {
	var sessions []*domain.FastingSession
	for rows.Next() {
		var s domain.FastingSession
		var sessionType, status, startStr, createdStr, updatedStr string
		var endStr, pausedStr sql.NullString
		var totalPausedSec, plannedSec, actualSec int64

		err := rows.Scan(
			&s.ID, &sessionType, &status, &startStr, &endStr, &pausedStr,
			&totalPausedSec, &plannedSec, &actualSec, &s.Note, &createdStr, &updatedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		session, parseErr := r.populateSession(&s, sessionType, status, startStr, createdStr, updatedStr, endStr, pausedStr, totalPausedSec, plannedSec, actualSec)
		if parseErr != nil {
			return nil, parseErr
		}

		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields on a FastingSession after scanning raw values.
func (r *SQLiteSessionRepo) populateSession(
	s *domain.FastingSession,
	sessionType, status, startStr, createdStr, updatedStr string,
	endStr, pausedStr sql.NullString,
	totalPausedSec, plannedSec, actualSec int64,
) (*domain.FastingSession, error) {
	s.Type = domain.SessionType(sessionType)
	s.Status = domain.SessionStatus(status)
	s.TotalPaused = secToDuration(totalPausedSec)
	s.Planned = secToDuration(plannedSec)
	s.Actual = secToDuration(actualSec)
	s.EndTime = parseNullableTime(endStr, time.RFC3339)
	s.PausedAt = parseNullableTime(pausedStr, time.RFC3339)

	var parseErr error
	s.StartTime, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
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

// isSingleOpenViolation reports whether err is a violation of the partial
// unique index guarding the one-open-session invariant.
func isSingleOpenViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_sessions_single_open")
}
