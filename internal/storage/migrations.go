package storage

import "fmt"

// migrate creates the schema if it doesn't exist.
func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Info("database migrations applied")
	return nil
}

var migrations = []string{
	// Pinned stations, shown on the home page. global_id is the MVG
	// station identifier, e.g. "de:09162:1".
	`CREATE TABLE IF NOT EXISTS favorites (
		global_id TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		lat       REAL,
		lon       REAL,
		added_at  INTEGER NOT NULL
	)`,
}
