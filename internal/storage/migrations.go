package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS sessions (
					name TEXT PRIMARY KEY,
					date_locale TEXT NOT NULL DEFAULT 'US',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS items (
					id TEXT NOT NULL,
					session TEXT NOT NULL,
					position INTEGER NOT NULL,
					provider TEXT NOT NULL,
					installment_no INTEGER NOT NULL DEFAULT 0,
					due_date TEXT NOT NULL DEFAULT '',
					raw_due_date TEXT NOT NULL DEFAULT '',
					amount_cents INTEGER NOT NULL DEFAULT 0,
					currency TEXT NOT NULL DEFAULT 'USD',
					autopay INTEGER NOT NULL DEFAULT 0,
					late_fee_cents INTEGER NOT NULL DEFAULT 0,
					confidence REAL NOT NULL DEFAULT 0,
					amount_found INTEGER NOT NULL DEFAULT 0,
					installment_stated INTEGER NOT NULL DEFAULT 0,
					installment_total_known INTEGER NOT NULL DEFAULT 0,
					autopay_stated INTEGER NOT NULL DEFAULT 0,
					PRIMARY KEY (session, id),
					FOREIGN KEY (session) REFERENCES sessions(name)
				)`,
				`CREATE INDEX idx_items_session_position ON items(session, position)`,

				`CREATE TABLE IF NOT EXISTS issues (
					id TEXT NOT NULL,
					session TEXT NOT NULL,
					position INTEGER NOT NULL,
					reason TEXT NOT NULL,
					snippet TEXT NOT NULL DEFAULT '',
					PRIMARY KEY (session, id),
					FOREIGN KEY (session) REFERENCES sessions(name)
				)`,

				`CREATE TABLE IF NOT EXISTS snapshots (
					session TEXT NOT NULL,
					row_id TEXT NOT NULL,
					previous_due_date TEXT NOT NULL DEFAULT '',
					previous_raw_due_date TEXT NOT NULL DEFAULT '',
					previous_confidence REAL NOT NULL DEFAULT 0,
					PRIMARY KEY (session, row_id),
					FOREIGN KEY (session) REFERENCES sessions(name)
				)`,

				`CREATE TABLE IF NOT EXISTS cache_entries (
					key TEXT PRIMARY KEY,
					result TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS cache_stats (
					id INTEGER PRIMARY KEY CHECK (id = 1),
					hits INTEGER NOT NULL DEFAULT 0,
					misses INTEGER NOT NULL DEFAULT 0
				)`,
				`INSERT OR IGNORE INTO cache_stats (id, hits, misses) VALUES (1, 0, 0)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies pending migrations in order, each in its own transaction.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		slog.Debug("applying migration", "version", m.Version, "description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
