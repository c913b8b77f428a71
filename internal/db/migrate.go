package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates are tolerated because the list is re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'todo'
		                CHECK(status IN ('todo','in_progress','done')),
		start_date      TEXT,
		end_date        TEXT,
		estimated_hours REAL NOT NULL DEFAULT 0,
		progress        REAL NOT NULL DEFAULT 0
		                CHECK(progress >= 0 AND progress <= 100),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		predecessor_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		successor_id   TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		dep_type       TEXT NOT NULL DEFAULT 'finish-to-start'
		               CHECK(dep_type IN ('finish-to-start','start-to-start','finish-to-finish','start-to-finish')),
		lag_days       REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (predecessor_id, successor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependencies_successor ON dependencies(successor_id)`,
}
