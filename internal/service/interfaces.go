// Package service defines the interfaces between the classification engine,
// the relational store, and the spreadsheet-of-record.
package service

import (
	"context"
	"time"

	"github.com/marune/backoffice/internal/model"
)

// Storage is the entity repository: it supplies the records to classify and
// receives reconciled rows from the spreadsheet sync. The engine itself
// never queries it.
type Storage interface {
	SaveRecords(ctx context.Context, records []model.Record) error
	ListRecords(ctx context.Context, kind model.EntityKind) ([]model.Record, error)
	GetRecord(ctx context.Context, kind model.EntityKind, id string) (*model.Record, error)
	CountRecords(ctx context.Context, kind model.EntityKind) (int, error)
	RecordSyncRun(ctx context.Context, kind model.EntityKind, rowCount int, started, finished time.Time) error
	Close() error
}

// SheetReader pulls entity rows from the spreadsheet-of-record.
type SheetReader interface {
	ReadRecords(ctx context.Context, kind model.EntityKind) ([]model.Record, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
