package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/marune/backoffice/internal/cli"
	"github.com/marune/backoffice/internal/common"
	"github.com/marune/backoffice/internal/config"
	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/service"
	"github.com/marune/backoffice/internal/sheets"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// saveBatchSize bounds one upsert transaction during sync.
const saveBatchSize = 50

func syncCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull the spreadsheet-of-record into the local store",
		Long: `Reads the configured worksheets and upserts their rows into the
SQLite store. Rows without an id are assigned one. Pass --kind to sync
a single entity kind; the default syncs all three.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var kinds []model.EntityKind
			if kindFlag == "" {
				kinds = []model.EntityKind{model.KindSeller, model.KindBuyer, model.KindTask}
			} else {
				kind, err := parseKindArg(kindFlag)
				if err != nil {
					return err
				}
				kinds = []model.EntityKind{kind}
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return common.NewUserError(
					"Google Sheets is not configured; run 'backoffice auth' or set the GOOGLE_SHEETS_* variables", err)
			}

			reader, err := sheets.NewReader(ctx, *sheetsConfig, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to create sheets reader: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, kind := range kinds {
				if err := syncKind(ctx, reader, store, kind); err != nil {
					return err
				}
			}

			fmt.Println(cli.SuccessStyle.Render("Sync complete"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "entity kind to sync (seller, buyer, task); default all")

	return cmd
}

func syncKind(ctx context.Context, reader service.SheetReader, store service.Storage, kind model.EntityKind) error {
	started := time.Now()

	records, err := reader.ReadRecords(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to read %s worksheet: %w", kind, err)
	}

	now := time.Now()
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		records[i].UpdatedAt = now
	}

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetDescription(fmt.Sprintf("Syncing %ss", kind)),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for start := 0; start < len(records); start += saveBatchSize {
		end := start + saveBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := store.SaveRecords(ctx, records[start:end]); err != nil {
			return fmt.Errorf("failed to save %s records: %w", kind, err)
		}
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()

	if err := store.RecordSyncRun(ctx, kind, len(records), started, time.Now()); err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}

	slog.Info("sync complete",
		"kind", kind,
		"rows", len(records),
		"duration", time.Since(started).Round(time.Millisecond))
	return nil
}
