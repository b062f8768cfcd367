// Package sheets reads the spreadsheet-of-record the sales office maintains,
// producing entity records for reconciliation into the relational store.
package sheets

import (
	"fmt"
	"time"

	"github.com/marune/backoffice/internal/common"
	"github.com/marune/backoffice/internal/model"
)

// Config holds the configuration for the Google Sheets reader.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SellerSheet        string
	BuyerSheet         string
	TaskSheet          string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SellerSheet:   "Sellers",
		BuyerSheet:    "Buyers",
		TaskSheet:     "Tasks",
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: provide either a service account path or OAuth2 credentials", common.ErrMissingConfig)
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: use either OAuth2 or a service account, not both", common.ErrInvalidConfig)
	}
	if c.SpreadsheetID == "" {
		return fmt.Errorf("%w: spreadsheet id", common.ErrMissingConfig)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}
	return nil
}

// SheetFor returns the worksheet name holding one entity kind.
func (c *Config) SheetFor(kind model.EntityKind) (string, error) {
	switch kind {
	case model.KindSeller:
		return c.SellerSheet, nil
	case model.KindBuyer:
		return c.BuyerSheet, nil
	case model.KindTask:
		return c.TaskSheet, nil
	}
	return "", fmt.Errorf("no worksheet configured for kind %q", kind)
}
