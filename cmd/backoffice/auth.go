package main

import (
	"fmt"
	"os"

	"github.com/marune/backoffice/internal/cli"
	"github.com/marune/backoffice/internal/sheets"
	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	var (
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets via OAuth2",
		Long: `Runs the interactive OAuth2 flow in the browser and prints the
resulting refresh token. Put the token in the config file or in
GOOGLE_SHEETS_REFRESH_TOKEN so sync can read the spreadsheet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
			}
			if clientSecret == "" {
				clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
			}
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("client id and client secret are required (flags or GOOGLE_SHEETS_CLIENT_ID / GOOGLE_SHEETS_CLIENT_SECRET)")
			}

			token, err := sheets.AuthenticateInteractive(cmd.Context(), sheets.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
			})
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			if token.RefreshToken == "" {
				return fmt.Errorf("no refresh token returned; revoke the app's access and try again")
			}

			fmt.Println(cli.SuccessStyle.Render("Authentication successful."))
			fmt.Println()
			fmt.Println(cli.InfoStyle.Render("Add this to your config file:"))
			fmt.Println()
			fmt.Println("  sheets:")
			fmt.Printf("    refresh_token: %s\n", token.RefreshToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client id")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")

	return cmd
}
