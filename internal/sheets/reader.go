package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/marune/backoffice/internal/common"
	"github.com/marune/backoffice/internal/model"
	"github.com/marune/backoffice/internal/service"
	"google.golang.org/api/sheets/v4"
)

// idHeader is the reserved column carrying the row identity. Every other
// header names a schema field verbatim.
const idHeader = "id"

// Reader pulls entity rows from the spreadsheet-of-record.
type Reader struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

var _ service.SheetReader = (*Reader)(nil)

// NewReader creates a Google Sheets reader.
func NewReader(ctx context.Context, config Config, logger *slog.Logger) (*Reader, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Reader{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// ReadRecords fetches one entity kind's worksheet and maps its rows to
// records. Raw cell values pass through untouched; the snapshot boundary
// does all normalization.
func (r *Reader) ReadRecords(ctx context.Context, kind model.EntityKind) ([]model.Record, error) {
	sheetName, err := r.config.SheetFor(kind)
	if err != nil {
		return nil, err
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  r.config.RetryAttempts,
		InitialDelay: r.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	var resp *sheets.ValueRange
	err = common.WithRetry(ctx, func() error {
		var getErr error
		resp, getErr = r.service.Spreadsheets.Values.
			Get(r.config.SpreadsheetID, sheetName).
			ValueRenderOption("UNFORMATTED_VALUE").
			Context(ctx).
			Do()
		if getErr != nil {
			return fmt.Errorf("%w: %v", common.ErrSheetConnection, getErr)
		}
		return nil
	}, retryOpts)
	if err != nil {
		common.LogError(err, "worksheet read failed", common.Fields{
			"sheet": sheetName,
			"kind":  kind,
		})
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
	}

	records, err := rowsToRecords(kind, resp.Values)
	if err != nil {
		return nil, err
	}

	r.logger.Info("worksheet read",
		"sheet", sheetName,
		"kind", kind,
		"rows", len(records))

	return records, nil
}

// rowsToRecords converts raw sheet values into records. The first row is the
// header row naming schema fields; rows with no id come back with an empty ID
// for the caller to assign one.
func rowsToRecords(kind model.EntityKind, rows [][]any) ([]model.Record, error) {
	if len(rows) == 0 {
		return nil, common.ErrMissingHeader
	}

	headers := make([]string, len(rows[0]))
	idCol := -1
	for i, cell := range rows[0] {
		h := strings.TrimSpace(fmt.Sprint(cell))
		headers[i] = h
		if h == idHeader {
			idCol = i
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("%w: no %q column", common.ErrMissingHeader, idHeader)
	}

	var records []model.Record
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		fields := make(map[string]any)
		id := ""
		empty := true
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" || cell == nil {
				continue
			}
			if s, ok := cell.(string); ok && strings.TrimSpace(s) == "" {
				continue
			}
			empty = false
			if i == idCol {
				id = strings.TrimSpace(fmt.Sprint(cell))
				continue
			}
			fields[headers[i]] = cell
		}
		if empty {
			continue
		}

		records = append(records, model.Record{
			ID:     id,
			Kind:   kind,
			Fields: fields,
		})
	}

	return records, nil
}
