package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSqliteSchema creates the geocode cache table in SQLite.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL,
        label TEXT NOT NULL DEFAULT ''
    );
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create geocode_cache: %w", err)
	}

	return nil
}

// InitPostgresSchema creates the geocode cache table in Postgres.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        label TEXT NOT NULL DEFAULT ''
    );
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create geocode_cache: %w", err)
	}

	return nil
}
