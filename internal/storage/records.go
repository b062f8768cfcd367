package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marune/backoffice/internal/common"
	"github.com/marune/backoffice/internal/model"
)

// SaveRecords upserts a batch of records in one transaction. Rows keep the
// (kind, id) identity assigned at sync time.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (kind, id, fields, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			fields = excluded.fields,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for i := range records {
		rec := &records[i]
		fields, err := json.Marshal(rec.Fields)
		if err != nil {
			return fmt.Errorf("failed to encode fields for record %s: %w", rec.ID, err)
		}
		updated := rec.UpdatedAt
		if updated.IsZero() {
			updated = now
		}
		if _, err := stmt.ExecContext(ctx, string(rec.Kind), rec.ID, string(fields), updated); err != nil {
			return fmt.Errorf("failed to upsert record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// ListRecords returns every record of one entity kind, in stable id order.
func (s *SQLiteStorage) ListRecords(ctx context.Context, kind model.EntityKind) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fields, updated_at FROM records
		WHERE kind = ? ORDER BY id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		rec, err := scanRecord(rows, kind)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// GetRecord returns one record, or common.ErrNotFound.
func (s *SQLiteStorage) GetRecord(ctx context.Context, kind model.EntityKind, id string) (*model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, fields, updated_at FROM records
		WHERE kind = ? AND id = ?`, string(kind), id)

	rec, err := scanRecord(row, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %s/%s: %w", kind, id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CountRecords returns the number of stored records of one kind.
func (s *SQLiteStorage) CountRecords(ctx context.Context, kind model.EntityKind) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateKind(kind); err != nil {
		return 0, err
	}

	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE kind = ?`, string(kind))
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// RecordSyncRun stores one reconciliation pass for diagnostics.
func (s *SQLiteStorage) RecordSyncRun(ctx context.Context, kind model.EntityKind, rowCount int, started, finished time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKind(kind); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (kind, row_count, started_at, finished_at)
		VALUES (?, ?, ?, ?)`, string(kind), rowCount, started.UTC(), finished.UTC())
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, kind model.EntityKind) (model.Record, error) {
	var (
		id        string
		fieldsRaw string
		updatedAt time.Time
	)
	if err := row.Scan(&id, &fieldsRaw, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, err
		}
		return model.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal([]byte(fieldsRaw), &fields); err != nil {
		return model.Record{}, fmt.Errorf("failed to decode fields for record %s: %w", id, err)
	}

	return model.Record{
		ID:        id,
		Kind:      kind,
		Fields:    fields,
		UpdatedAt: updatedAt,
	}, nil
}
