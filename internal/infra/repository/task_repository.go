package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

const maxWatchRetries = 5

type taskRecord struct {
	ID                 string    `json:"id"`
	Text               string    `json:"text"`
	ProjectID          string    `json:"project_id,omitempty"`
	MilestoneID        string    `json:"milestone_id,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	ScheduledAt        string    `json:"scheduled_at,omitempty"`
	StartTime          string    `json:"start_time,omitempty"`
	EndTime            string    `json:"end_time,omitempty"`
	IsFixed            bool      `json:"is_fixed"`
	PomodoroEstimation int       `json:"pomodoro_estimation"`
	PomodoroCompleted  int       `json:"pomodoro_completed"`
	Completed          bool      `json:"completed"`
	CreatedAt          time.Time `json:"created_at"`
}

func toTaskRecord(task *domain.Task) taskRecord {
	record := taskRecord{
		ID:                 task.ID,
		Text:               task.Text,
		ProjectID:          task.ProjectID,
		MilestoneID:        task.MilestoneID,
		Notes:              task.Notes,
		ScheduledAt:        task.ScheduledAt,
		IsFixed:            task.IsFixed,
		PomodoroEstimation: task.PomodoroEstimation,
		PomodoroCompleted:  task.PomodoroCompleted,
		Completed:          task.Completed,
		CreatedAt:          task.CreatedAt,
	}
	if task.StartTime != nil {
		record.StartTime = task.StartTime.String()
	}
	if task.EndTime != nil {
		record.EndTime = task.EndTime.String()
	}
	return record
}

func (r taskRecord) toDomain() (*domain.Task, error) {
	task := &domain.Task{
		ID:                 r.ID,
		Text:               r.Text,
		ProjectID:          r.ProjectID,
		MilestoneID:        r.MilestoneID,
		Notes:              r.Notes,
		ScheduledAt:        r.ScheduledAt,
		IsFixed:            r.IsFixed,
		PomodoroEstimation: r.PomodoroEstimation,
		PomodoroCompleted:  r.PomodoroCompleted,
		Completed:          r.Completed,
		CreatedAt:          r.CreatedAt,
	}

	if r.StartTime != "" {
		start, err := domain.ParseClock(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTaskData, err)
		}
		task.StartTime = &start
	}
	if r.EndTime != "" {
		end, err := domain.ParseClock(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTaskData, err)
		}
		task.EndTime = &end
	}

	return task, nil
}

func decodeTask(data []byte) (*domain.Task, error) {
	var record taskRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidTaskData
	}
	return record.toDomain()
}

func encodeTask(task *domain.Task) ([]byte, error) {
	data, err := json.Marshal(toTaskRecord(task))
	if err != nil {
		return nil, ErrInvalidTaskData
	}
	return data, nil
}

type taskRepository struct {
	client redis.UniversalClient
	keys   keyspace
}

func NewTaskRepository(client redis.UniversalClient, keyPrefix string) domain.TaskRepository {
	return &taskRepository{
		client: client,
		keys:   newKeyspace(keyPrefix),
	}
}

func (r *taskRepository) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	data, err := r.client.Get(ctx, r.keys.task(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return decodeTask(data)
}

func (r *taskRepository) ListTasksForDay(ctx context.Context, day string) ([]domain.Task, error) {
	return r.listIndexed(ctx, r.keys.day(day), func(t *domain.Task) bool {
		return t.ScheduledAt == day
	})
}

func (r *taskRepository) ListInboxTasks(ctx context.Context) ([]domain.Task, error) {
	return r.listIndexed(ctx, r.keys.inbox(), (*domain.Task).IsInbox)
}

func (r *taskRepository) ListTasksForProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return r.listIndexed(ctx, r.keys.projectTasks(projectID), func(t *domain.Task) bool {
		return t.ProjectID == projectID
	})
}

// listIndexed loads every task referenced by an index set. Members whose record is gone
// or no longer matches are stale index entries and are skipped.
func (r *taskRepository) listIndexed(ctx context.Context, indexKey string, keep func(*domain.Task) bool) ([]domain.Task, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.keys.task(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		task, err := decodeTask([]byte(raw))
		if err != nil {
			return nil, err
		}
		if keep(task) {
			tasks = append(tasks, *task)
		}
	}

	slices.SortFunc(tasks, func(a, b domain.Task) int {
		switch {
		case domain.Less(a, b):
			return -1
		case domain.Less(b, a):
			return 1
		}
		return 0
	})

	return tasks, nil
}

func (r *taskRepository) SaveTask(ctx context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidTask
	}

	data, err := encodeTask(task)
	if err != nil {
		return err
	}

	key := r.keys.task(task.ID)

	return r.watch(ctx, key, func(tx *redis.Tx) error {
		previous, err := r.loadInTx(ctx, tx, key)
		if err != nil && !errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if previous != nil {
				r.unindex(ctx, pipe, previous)
			}
			pipe.Set(ctx, key, data, 0)
			r.index(ctx, pipe, task)
			return nil
		})
		return err
	})
}

func (r *taskRepository) UpdateTask(ctx context.Context, id string, mutate func(*domain.Task)) (*domain.Task, error) {
	key := r.keys.task(id)

	var updated *domain.Task
	err := r.watch(ctx, key, func(tx *redis.Tx) error {
		previous, err := r.loadInTx(ctx, tx, key)
		if err != nil {
			return err
		}

		task := previous.Clone()
		mutate(&task)
		task.ID = id

		data, err := encodeTask(&task)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.unindex(ctx, pipe, previous)
			pipe.Set(ctx, key, data, 0)
			r.index(ctx, pipe, &task)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *taskRepository) UpdateStartTime(ctx context.Context, id string, start *domain.Clock) error {
	key := r.keys.task(id)

	return r.watch(ctx, key, func(tx *redis.Tx) error {
		task, err := r.loadInTx(ctx, tx, key)
		if err != nil {
			return err
		}

		task.StartTime = nil
		if start != nil {
			task.StartTime = domain.ClockPtr(*start)
		}

		data, err := encodeTask(task)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	})
}

func (r *taskRepository) DeleteTask(ctx context.Context, id string) error {
	key := r.keys.task(id)

	return r.watch(ctx, key, func(tx *redis.Tx) error {
		task, err := r.loadInTx(ctx, tx, key)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			r.unindex(ctx, pipe, task)
			return nil
		})
		return err
	})
}

func (r *taskRepository) loadInTx(ctx context.Context, tx *redis.Tx, key string) (*domain.Task, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return decodeTask(data)
}

func (r *taskRepository) index(ctx context.Context, pipe redis.Pipeliner, task *domain.Task) {
	if task.ScheduledAt != "" {
		pipe.SAdd(ctx, r.keys.day(task.ScheduledAt), task.ID)
	}
	if task.IsInbox() {
		pipe.SAdd(ctx, r.keys.inbox(), task.ID)
	}
	if task.ProjectID != "" {
		pipe.SAdd(ctx, r.keys.projectTasks(task.ProjectID), task.ID)
	}
}

func (r *taskRepository) unindex(ctx context.Context, pipe redis.Pipeliner, task *domain.Task) {
	if task.ScheduledAt != "" {
		pipe.SRem(ctx, r.keys.day(task.ScheduledAt), task.ID)
	}
	pipe.SRem(ctx, r.keys.inbox(), task.ID)
	if task.ProjectID != "" {
		pipe.SRem(ctx, r.keys.projectTasks(task.ProjectID), task.ID)
	}
}

// watch runs fn as an optimistic transaction on key, retrying when another client
// modified the key between WATCH and EXEC.
func (r *taskRepository) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for range maxWatchRetries {
		err := r.client.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: %s", ErrTooManyConflicts, key)
}
