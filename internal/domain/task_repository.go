package domain

import "context"

//go:generate mockgen -source=task_repository.go -destination=task_repository_mock.go -package=domain

type TaskRepository interface {
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasksForDay(ctx context.Context, day string) ([]Task, error)
	ListInboxTasks(ctx context.Context) ([]Task, error)
	ListTasksForProject(ctx context.Context, projectID string) ([]Task, error)
	SaveTask(ctx context.Context, task *Task) error
	// UpdateTask applies mutate to the stored task atomically and returns the result.
	// mutate may run more than once when a concurrent write forces a retry.
	UpdateTask(ctx context.Context, id string, mutate func(*Task)) (*Task, error)
	UpdateStartTime(ctx context.Context, id string, start *Clock) error
	DeleteTask(ctx context.Context, id string) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, settings *Settings) error
}
