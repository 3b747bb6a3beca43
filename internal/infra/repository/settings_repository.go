package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

type settingsRecord struct {
	PomodoroWorkDuration int `json:"pomodoro_work_duration"`
	PomodoroShortBreak   int `json:"pomodoro_short_break"`
}

type settingsRepository struct {
	client redis.UniversalClient
	keys   keyspace
}

func NewSettingsRepository(client redis.UniversalClient, keyPrefix string) domain.SettingsRepository {
	return &settingsRepository{
		client: client,
		keys:   newKeyspace(keyPrefix),
	}
}

func (r *settingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	data, err := r.client.Get(ctx, r.keys.settings()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}

	var record settingsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidSettingsData
	}

	return &domain.Settings{
		PomodoroWorkDuration: record.PomodoroWorkDuration,
		PomodoroShortBreak:   record.PomodoroShortBreak,
	}, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, settings *domain.Settings) error {
	if settings == nil {
		return ErrInvalidSettingsData
	}

	data, err := json.Marshal(settingsRecord{
		PomodoroWorkDuration: settings.PomodoroWorkDuration,
		PomodoroShortBreak:   settings.PomodoroShortBreak,
	})
	if err != nil {
		return ErrInvalidSettingsData
	}

	return r.client.Set(ctx, r.keys.settings(), data, 0).Err()
}
