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
	`CREATE TABLE IF NOT EXISTS analysts (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		shift_type TEXT NOT NULL
		           CHECK(shift_type IN ('MORNING','EVENING','WEEKEND')),
		is_active  INTEGER NOT NULL DEFAULT 1,
		skills     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// UNIQUE(analyst_id, date) enforces at-most-one-schedule-per-day in
	// the storage layer, not only in the apply-time duplicate guard.
	`CREATE TABLE IF NOT EXISTS schedules (
		id          TEXT PRIMARY KEY,
		analyst_id  TEXT NOT NULL REFERENCES analysts(id) ON DELETE CASCADE,
		date        TEXT NOT NULL,
		shift_type  TEXT NOT NULL
		            CHECK(shift_type IN ('MORNING','EVENING','WEEKEND')),
		is_screener INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(analyst_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedules_date ON schedules(date)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_analyst ON schedules(analyst_id)`,

	`CREATE TABLE IF NOT EXISTS vacations (
		id          TEXT PRIMARY KEY,
		analyst_id  TEXT NOT NULL REFERENCES analysts(id) ON DELETE CASCADE,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		is_approved INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_vacations_analyst ON vacations(analyst_id)`,

	`CREATE TABLE IF NOT EXISTS scheduling_constraints (
		id              TEXT PRIMARY KEY,
		analyst_id      TEXT REFERENCES analysts(id) ON DELETE CASCADE,
		constraint_type TEXT NOT NULL DEFAULT '',
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		is_active       INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_constraints_analyst ON scheduling_constraints(analyst_id)`,

	// One row per (algorithm_type, shift_type). Analyst ID lists are
	// stored comma-joined in rotation order.
	`CREATE TABLE IF NOT EXISTS rotation_states (
		id                      TEXT PRIMARY KEY,
		algorithm_type          TEXT NOT NULL,
		shift_type              TEXT NOT NULL,
		current_sun_thu_analyst TEXT NOT NULL DEFAULT '',
		current_tue_sat_analyst TEXT NOT NULL DEFAULT '',
		completed_analysts      TEXT NOT NULL DEFAULT '',
		in_progress_analysts    TEXT NOT NULL DEFAULT '',
		last_updated            TEXT NOT NULL,
		UNIQUE(algorithm_type, shift_type)
	)`,

	// Append-only ledger. Amounts are stored as decimal strings.
	`CREATE TABLE IF NOT EXISTS comp_off_transactions (
		id               TEXT PRIMARY KEY,
		analyst_id       TEXT NOT NULL REFERENCES analysts(id) ON DELETE CASCADE,
		type             TEXT NOT NULL
		                 CHECK(type IN ('EARNED','AUTO_ASSIGNED','USED')),
		amount           TEXT NOT NULL,
		is_banked        INTEGER NOT NULL DEFAULT 0,
		is_auto_assigned INTEGER NOT NULL DEFAULT 0,
		week_start       TEXT NOT NULL,
		note             TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_compoff_analyst_week ON comp_off_transactions(analyst_id, week_start)`,
}
