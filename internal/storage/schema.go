package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// OpenOptions holds connection pool limits. Zero values leave the
// database/sql defaults in place.
type OpenOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open opens a database connection for the given driver and DSN and applies
// the schema. Callers register the sql driver ("sqlite3" or "postgres") by
// importing it.
func Open(driver, dsn string, opts OpenOptions) (*sql.DB, error) {
	name := driver
	if driver == "sqlite" {
		name = "sqlite3"
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables if they do not exist. The schema is minimal and
// identical across sqlite and postgres.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS manual_entries (
			id TEXT PRIMARY KEY,
			section TEXT NOT NULL DEFAULT '',
			title_en TEXT NOT NULL,
			title_ar TEXT NOT NULL DEFAULT '',
			content_en TEXT NOT NULL DEFAULT '',
			content_ar TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			route TEXT NOT NULL DEFAULT '',
			chip_label_en TEXT NOT NULL DEFAULT '',
			chip_label_ar TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS usage_events (
			id TEXT PRIMARY KEY,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			prompt_tokens INTEGER NOT NULL DEFAULT 0,
			completion_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL,
			error_text TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_events_occurred_at ON usage_events (occurred_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}
