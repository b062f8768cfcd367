package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// createSheetsService creates a Google Sheets API service from either a
// service account key or OAuth2 refresh-token credentials.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsReadonlyScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}
