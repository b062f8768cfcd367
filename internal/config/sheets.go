package config

import (
	"os"

	"github.com/marune/backoffice/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads the spreadsheet-of-record configuration. Precedence:
// Viper (config file or BACKOFFICE_ env vars), then the GOOGLE_SHEETS_*
// environment variables, then defaults.
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.seller_sheet"); v != "" {
		config.SellerSheet = v
	}
	if v := viper.GetString("sheets.buyer_sheet"); v != "" {
		config.BuyerSheet = v
	}
	if v := viper.GetString("sheets.task_sheet"); v != "" {
		config.TaskSheet = v
	}

	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
