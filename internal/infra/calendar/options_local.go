//go:build !gcloud

package calendar

import (
	"context"

	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-day-scheduler/internal/config"
)

// clientOptions prefers an emulator endpoint, then a stored user token, then a credentials file.
func clientOptions(ctx context.Context, cfg *config.CalendarConfig) ([]option.ClientOption, error) {
	if cfg.Endpoint != "" {
		return []option.ClientOption{
			option.WithEndpoint(cfg.Endpoint),
			option.WithoutAuthentication(),
		}, nil
	}

	if usesUserToken(cfg) {
		ts, err := userTokenSource(ctx, cfg.CredentialsFile, cfg.TokenFile)
		if err != nil {
			return nil, err
		}
		return []option.ClientOption{option.WithTokenSource(ts)}, nil
	}

	return []option.ClientOption{
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(gcalendar.CalendarReadonlyScope),
	}, nil
}
