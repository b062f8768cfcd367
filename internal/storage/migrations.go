package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. A database that cannot be migrated to it is a fatal error.
const ExpectedSchemaVersion = 2

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
				`CREATE TABLE IF NOT EXISTS records (
					kind TEXT NOT NULL,
					id TEXT NOT NULL,
					fields TEXT NOT NULL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (kind, id)
				)`,
				`CREATE INDEX idx_records_kind ON records(kind)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Track sync runs for diagnostics",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS sync_runs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					kind TEXT NOT NULL,
					row_count INTEGER NOT NULL,
					started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					finished_at DATETIME
				)`)
			if err != nil {
				return fmt.Errorf("failed to create sync_runs: %w", err)
			}
			return nil
		},
	},
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	current := 0
	row := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_versions`)
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("applying migration", "version", m.Version, "description", m.Description)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_versions (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	if len(migrations) > 0 && migrations[len(migrations)-1].Version != ExpectedSchemaVersion {
		return fmt.Errorf("latest migration version %d does not match expected %d",
			migrations[len(migrations)-1].Version, ExpectedSchemaVersion)
	}

	return nil
}
