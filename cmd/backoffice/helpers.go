package main

import (
	"context"
	"fmt"
	"time"

	"github.com/marune/backoffice/internal/config"
	"github.com/marune/backoffice/internal/engine"
	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/predicate"
	"github.com/marune/backoffice/internal/rules"
	"github.com/marune/backoffice/internal/service"
	"github.com/marune/backoffice/internal/storage"
	"github.com/marune/backoffice/internal/temporal"
	"github.com/spf13/viper"
)

// initStorage opens the SQLite store and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}
	return store, nil
}

// loadTables loads and validates the rule tables. An invalid table is fatal
// before any classification is served.
func loadTables() (*rules.Tables, error) {
	cfg, err := config.LoadRulesConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load rules config: %w", err)
	}
	tables, err := rules.NewTables(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule tables: %w", err)
	}
	return tables, nil
}

// resolveEnv fixes the batch reference day: an explicit --today value, or the
// current day in the business timezone read once here, never inside the
// engine.
func resolveEnv(todayFlag string) (predicate.Env, error) {
	if todayFlag == "" {
		return predicate.NewEnv(time.Now().In(temporal.BusinessZone)), nil
	}
	d, ok := temporal.Normalize(todayFlag)
	if !ok {
		return predicate.Env{}, fmt.Errorf("invalid --today value: %q", todayFlag)
	}
	return predicate.NewEnv(d), nil
}

// parseKindArg converts the --kind flag into an entity kind.
func parseKindArg(s string) (model.EntityKind, error) {
	kind, ok := model.ParseKind(s)
	if !ok {
		return "", fmt.Errorf("invalid kind %q (want seller, buyer, or task)", s)
	}
	return kind, nil
}

// loadSnapshots pulls one kind's records from the store and normalizes them
// against the table schema.
func loadSnapshots(ctx context.Context, store service.Storage, tables *rules.Tables, kind model.EntityKind) ([]*model.Snapshot, error) {
	table, err := tables.ForKind(kind)
	if err != nil {
		return nil, err
	}

	records, err := store.ListRecords(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}

	snaps := make([]*model.Snapshot, 0, len(records))
	for i := range records {
		snaps = append(snaps, records[i].Snapshot(table.Schema))
	}
	return snaps, nil
}

// newClassifier wires the engine against loaded tables.
func newClassifier(tables *rules.Tables) *engine.Classifier {
	return engine.New(tables, nil)
}
