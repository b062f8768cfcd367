package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marune/backoffice/internal/common"
	"github.com/marune/backoffice/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrNilSlice    = errors.New("slice cannot be nil")
	ErrInvalidKind = errors.New("invalid entity kind")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateKind(kind model.EntityKind) error {
	switch kind {
	case model.KindSeller, model.KindBuyer, model.KindTask:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
}

func validateRecords(records []model.Record) error {
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilSlice)
	}
	seen := make(map[model.EntityKind]map[string]struct{})
	for i := range records {
		rec := &records[i]
		if err := validateString(rec.ID, fmt.Sprintf("records[%d].ID", i)); err != nil {
			return err
		}
		if err := validateKind(rec.Kind); err != nil {
			return fmt.Errorf("records[%d]: %w", i, err)
		}
		ids, ok := seen[rec.Kind]
		if !ok {
			ids = make(map[string]struct{})
			seen[rec.Kind] = ids
		}
		if _, dup := ids[rec.ID]; dup {
			return fmt.Errorf("%w: record %s/%s appears twice in one batch", common.ErrDuplicateEntry, rec.Kind, rec.ID)
		}
		ids[rec.ID] = struct{}{}
	}
	return nil
}
