package config

import (
	"os"
)

const (
	googleCalendarIDEnv       = "GOOGLE_CALENDAR_ID"
	googleCredentialsFileEnv  = "GOOGLE_CREDENTIALS_FILE"
	googleCalendarEndpointEnv = "GOOGLE_CALENDAR_ENDPOINT"
	googleTokenFileEnv        = "GOOGLE_TOKEN_FILE"
)

type CalendarConfig struct {
	CalendarID      string
	CredentialsFile string
	// TokenFile holds a user OAuth token; CredentialsFile is then read as OAuth client secrets.
	TokenFile string
	// Endpoint overrides the API base URL, e.g. for a local emulator.
	Endpoint string
}

func LoadCalendarConfig() *CalendarConfig {
	return &CalendarConfig{
		CalendarID:      os.Getenv(googleCalendarIDEnv),
		CredentialsFile: os.Getenv(googleCredentialsFileEnv),
		Endpoint:        os.Getenv(googleCalendarEndpointEnv),
		TokenFile:       os.Getenv(googleTokenFileEnv),
	}
}

func (c *CalendarConfig) Enabled() bool {
	return c != nil && c.CalendarID != ""
}

func (c *CalendarConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if requiresExplicitCredentials && c.CredentialsFile == "" && c.Endpoint == "" {
		return ErrCalendarCredential
	}
	if c.TokenFile != "" && c.CredentialsFile == "" {
		return ErrCalendarClientSecrets
	}
	return nil
}
