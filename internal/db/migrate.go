package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS fasting_sessions (
		id               TEXT PRIMARY KEY,
		session_type     TEXT NOT NULL
		                 CHECK(session_type IN ('twenty_four_hour','custom','intermittent','juice','water','dry')),
		status           TEXT NOT NULL DEFAULT 'active'
		                 CHECK(status IN ('active','paused','completed','stopped')),
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		paused_at        TEXT,
		total_paused_sec INTEGER NOT NULL DEFAULT 0 CHECK(total_paused_sec >= 0),
		planned_sec      INTEGER NOT NULL CHECK(planned_sec > 0),
		actual_sec       INTEGER NOT NULL DEFAULT 0,
		note             TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_status ON fasting_sessions(status)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_start ON fasting_sessions(start_time)`,

	// At most one session may be active or paused at a time. Enforced here
	// so every writer, not just the service layer, is bound by it.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_open
		ON fasting_sessions((1)) WHERE status IN ('active','paused')`,

	`CREATE TABLE IF NOT EXISTS streaks (
		id                 TEXT PRIMARY KEY,
		streak_type        TEXT NOT NULL UNIQUE
		                   CHECK(streak_type IN ('fasting','dieting','calorie_goal','water_intake')),
		current_streak     INTEGER NOT NULL DEFAULT 0 CHECK(current_streak >= 0),
		longest_streak     INTEGER NOT NULL DEFAULT 0 CHECK(longest_streak >= 0),
		last_activity_date TEXT,
		total_activities   INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_settings (
		id                   TEXT PRIMARY KEY DEFAULT 'default',
		default_session_type TEXT NOT NULL DEFAULT 'intermittent'
		                     CHECK(default_session_type IN ('twenty_four_hour','custom','intermittent','juice','water','dry')),
		default_planned_sec  INTEGER NOT NULL DEFAULT 57600 CHECK(default_planned_sec > 0)
	)`,

	// Seed default settings (16-hour intermittent fast)
	`INSERT OR IGNORE INTO user_settings (id) VALUES ('default')`,
}
