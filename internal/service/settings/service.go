package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

type Service struct {
	repo     domain.SettingsRepository
	defaults domain.Settings
}

// NewService falls back to domain.DefaultSettings when defaults are invalid.
func NewService(repo domain.SettingsRepository, defaults domain.Settings) *Service {
	if err := defaults.Validate(); err != nil {
		slog.Warn("configured pomodoro defaults are invalid, using built-in values",
			slog.String("error", err.Error()),
		)
		defaults = domain.DefaultSettings()
	}

	return &Service{
		repo:     repo,
		defaults: defaults,
	}
}

func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	return s.repo.GetSettings(ctx)
}

func (s *Service) Update(ctx context.Context, settings domain.Settings) (*domain.Settings, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveSettings(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	slog.InfoContext(ctx, "settings updated",
		slog.Int("pomodoro_work_duration", settings.PomodoroWorkDuration),
		slog.Int("pomodoro_short_break", settings.PomodoroShortBreak),
	)

	return &settings, nil
}

// EnsureDefaults seeds the store with the configured defaults when no settings exist yet.
func (s *Service) EnsureDefaults(ctx context.Context) (*domain.Settings, error) {
	existing, err := s.repo.GetSettings(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	seeded := s.defaults
	if err := s.repo.SaveSettings(ctx, &seeded); err != nil {
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}

	slog.InfoContext(ctx, "seeded default settings",
		slog.Int("pomodoro_work_duration", seeded.PomodoroWorkDuration),
		slog.Int("pomodoro_short_break", seeded.PomodoroShortBreak),
	)

	return &seeded, nil
}
