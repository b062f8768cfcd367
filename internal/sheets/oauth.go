package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// OAuth2Config holds the credentials for the interactive OAuth2 bootstrap.
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
}

// AuthenticateInteractive performs the OAuth2 flow in the browser and
// returns the resulting token; its refresh token goes into the config file.
func AuthenticateInteractive(ctx context.Context, config OAuth2Config) (*oauth2.Token, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost:8080/callback",
		Scopes:       []string{sheets.SpreadsheetsReadonlyScope},
	}

	codeChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	server := &http.Server{Addr: ":8080", Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errorChan <- fmt.Errorf("no authorization code received")
			_, _ = fmt.Fprint(w, "<html><body><h1>Authentication Failed</h1><p>No authorization code received. Please try again.</p></body></html>")
			return
		}

		codeChan <- code
		_, _ = fmt.Fprint(w, "<html><body><h1>Authentication Successful</h1><p>You can close this window and return to the terminal.</p></body></html>")
	})

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errorChan <- fmt.Errorf("failed to start callback server: %w", err)
		}
	}()

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	slog.Info("Google Sheets authentication required")
	slog.Info("Please visit this URL to authenticate", "url", authURL)

	var authCode string
	select {
	case authCode = <-codeChan:
		slog.Info("Received authorization code")
	case err := <-errorChan:
		_ = server.Shutdown(ctx)
		return nil, err
	case <-time.After(5 * time.Minute):
		_ = server.Shutdown(ctx)
		return nil, fmt.Errorf("authentication timeout - no response received within 5 minutes")
	case <-ctx.Done():
		_ = server.Shutdown(ctx)
		return nil, ctx.Err()
	}

	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("Error shutting down callback server", "error", err)
	}

	token, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return token, nil
}
