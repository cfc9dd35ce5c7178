package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avendel/fastrack/internal/db"
	"github.com/avendel/fastrack/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo over the single user_settings row.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(db db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: db}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT id, default_session_type, default_planned_sec
		FROM user_settings WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var s domain.Settings
	var sessionType string
	var plannedSec int64
	if err := row.Scan(&s.ID, &sessionType, &plannedSec); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user settings: %w", err)
	}
	s.DefaultType = domain.SessionType(sessionType)
	s.DefaultPlanned = secToDuration(plannedSec)
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) error {
	query := `INSERT INTO user_settings (id, default_session_type, default_planned_sec)
		VALUES ('default', ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			default_session_type = excluded.default_session_type,
			default_planned_sec = excluded.default_planned_sec`
	_, err := r.db.ExecContext(ctx, query, string(s.DefaultType), durationToSec(s.DefaultPlanned))
	if err != nil {
		return fmt.Errorf("upserting user settings: %w", err)
	}
	return nil
}
