package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/marune/backoffice/internal/common"
	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "backoffice.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndListRecords(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	records := []model.Record{
		{
			ID:   "lead-2",
			Kind: model.KindSeller,
			Fields: map[string]any{
				"status":       "follow-up-in-progress",
				"nextCallDate": "2026/02/02",
			},
		},
		{
			ID:     "lead-1",
			Kind:   model.KindSeller,
			Fields: map[string]any{"assignee": "U"},
		},
		{
			ID:     "buyer-1",
			Kind:   model.KindBuyer,
			Fields: map[string]any{"email": "buyer@example.com"},
		},
	}

	require.NoError(t, store.SaveRecords(ctx, records))

	sellers, err := store.ListRecords(ctx, model.KindSeller)
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	// Stable id order.
	assert.Equal(t, "lead-1", sellers[0].ID)
	assert.Equal(t, "lead-2", sellers[1].ID)
	assert.Equal(t, "follow-up-in-progress", sellers[1].Fields["status"])

	count, err := store.CountRecords(ctx, model.KindBuyer)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveRecordsUpserts(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	rec := model.Record{
		ID:     "lead-1",
		Kind:   model.KindSeller,
		Fields: map[string]any{"assignee": "U"},
	}
	require.NoError(t, store.SaveRecords(ctx, []model.Record{rec}))

	rec.Fields = map[string]any{"assignee": "TA"}
	require.NoError(t, store.SaveRecords(ctx, []model.Record{rec}))

	got, err := store.GetRecord(ctx, model.KindSeller, "lead-1")
	require.NoError(t, err)
	assert.Equal(t, "TA", got.Fields["assignee"])

	count, err := store.CountRecords(ctx, model.KindSeller)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetRecordNotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetRecord(context.Background(), model.KindSeller, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveRecordsValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.SaveRecords(ctx, nil)
	assert.ErrorIs(t, err, ErrNilSlice)

	err = store.SaveRecords(ctx, []model.Record{{Kind: model.KindSeller}})
	assert.ErrorIs(t, err, ErrEmptyString)

	err = store.SaveRecords(ctx, []model.Record{{ID: "x", Kind: "tenant"}})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestSaveRecordsRejectsDuplicateIDsInOneBatch(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.SaveRecords(ctx, []model.Record{
		{ID: "lead-1", Kind: model.KindSeller, Fields: map[string]any{"assignee": "U"}},
		{ID: "lead-1", Kind: model.KindSeller, Fields: map[string]any{"assignee": "TA"}},
	})
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	// The same id under different kinds is two distinct records.
	err = store.SaveRecords(ctx, []model.Record{
		{ID: "x-1", Kind: model.KindSeller, Fields: map[string]any{}},
		{ID: "x-1", Kind: model.KindBuyer, Fields: map[string]any{}},
	})
	assert.NoError(t, err)
}

func TestStorageSatisfiesServiceInterface(t *testing.T) {
	var store service.Storage = newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecords(ctx, []model.Record{
		{ID: "lead-1", Kind: model.KindSeller, Fields: map[string]any{"assignee": "U"}},
	}))

	count, err := store.CountRecords(ctx, model.KindSeller)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordSyncRun(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	started := time.Now().Add(-time.Minute)
	require.NoError(t, store.RecordSyncRun(ctx, model.KindSeller, 42, started, time.Now()))
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}
