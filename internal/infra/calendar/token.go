package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"

	"github.com/KasumiMercury/primind-day-scheduler/internal/config"
)

// userTokenSource refreshes a stored user token with the OAuth client in secretsFile.
func userTokenSource(ctx context.Context, secretsFile, tokenFile string) (oauth2.TokenSource, error) {
	secrets, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secrets %s: %w", secretsFile, err)
	}

	oauthConfig, err := google.ConfigFromJSON(secrets, gcalendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secrets: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, err
	}

	return oauthConfig.TokenSource(ctx, tok), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token %s: %w", path, err)
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(raw, tok); err != nil {
		return nil, fmt.Errorf("failed to decode token %s: %w", path, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("token %s has neither access nor refresh token", path)
	}

	return tok, nil
}

func usesUserToken(cfg *config.CalendarConfig) bool {
	return cfg.TokenFile != "" && cfg.CredentialsFile != ""
}
