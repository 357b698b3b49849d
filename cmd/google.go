package cmd

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jwrobel/shiftcal/internal/auth"
	"github.com/jwrobel/shiftcal/internal/config"
)

// oauthScopes are the scopes the tool needs: read the shift plan, look
// spreadsheets up by title, and create calendar events.
var oauthScopes = []string{
	sheets.SpreadsheetsReadonlyScope,
	drive.DriveMetadataReadonlyScope,
	gcal.CalendarEventsScope,
}

// oauthConfigFor builds the OAuth config from the credentials file.
func oauthConfigFor(cfg *config.Config) (*oauth2.Config, error) {
	clientID, clientSecret, err := config.LoadGoogleCredentials(cfg.GoogleCredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load Google credentials: %w", err)
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  "http://127.0.0.1:8080", // Will be updated dynamically by auth flow
		Scopes:       oauthScopes,
		Endpoint:     google.Endpoint,
	}, nil
}

// googleClientOptions returns the client options for the Google API
// services: a service account key when configured, otherwise an OAuth
// client authenticated via the cached token (running the interactive
// consent flow on first use).
func googleClientOptions(ctx context.Context, cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.ServiceAccountPath != "" {
		return []option.ClientOption{option.WithCredentialsFile(cfg.ServiceAccountPath)}, nil
	}

	oauthConfig, err := oauthConfigFor(cfg)
	if err != nil {
		return nil, err
	}

	tokenStore := auth.NewFileTokenStore(cfg.TokenPath)
	httpClient, err := auth.GetAuthenticatedClient(ctx, oauthConfig, tokenStore)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	return []option.ClientOption{option.WithHTTPClient(httpClient)}, nil
}
