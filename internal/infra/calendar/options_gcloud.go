//go:build gcloud

package calendar

import (
	"context"

	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-day-scheduler/internal/config"
)

// clientOptions falls back to application default credentials of the runtime service account.
func clientOptions(ctx context.Context, cfg *config.CalendarConfig) ([]option.ClientOption, error) {
	var opts []option.ClientOption

	switch {
	case usesUserToken(cfg):
		ts, err := userTokenSource(ctx, cfg.CredentialsFile, cfg.TokenFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithTokenSource(ts))
	case cfg.CredentialsFile != "":
		opts = append(opts,
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(gcalendar.CalendarReadonlyScope),
		)
	default:
		opts = append(opts, option.WithScopes(gcalendar.CalendarReadonlyScope))
	}

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	return opts, nil
}
