package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

const idPrefix = "task_"

type CreateInput struct {
	Text               string `json:"text"`
	ProjectID          string `json:"project_id"`
	MilestoneID        string `json:"milestone_id"`
	Notes              string `json:"notes"`
	ScheduledAt        string `json:"scheduled_at"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	IsFixed            bool   `json:"is_fixed"`
	PomodoroEstimation int    `json:"pomodoro_estimation"`
}

type Service struct {
	repo domain.TaskRepository
	now  func() time.Time
}

func NewService(repo domain.TaskRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func NewID() string {
	return idPrefix + uuid.NewString()
}

func (in CreateInput) build(id string, createdAt time.Time) (*domain.Task, error) {
	var errs []error

	text := strings.TrimSpace(in.Text)
	if text == "" {
		errs = append(errs, errors.New("text is required"))
	}

	if in.ScheduledAt != "" {
		if err := domain.ValidateDay(in.ScheduledAt); err != nil {
			errs = append(errs, fmt.Errorf("scheduled_at: %w", err))
		}
	}

	if in.MilestoneID != "" && in.ProjectID == "" {
		errs = append(errs, errors.New("milestone_id requires project_id"))
	}

	if in.PomodoroEstimation < 0 {
		errs = append(errs, errors.New("pomodoro_estimation must not be negative"))
	}

	task := &domain.Task{
		ID:                 id,
		Text:               text,
		ProjectID:          in.ProjectID,
		MilestoneID:        in.MilestoneID,
		Notes:              strings.TrimSpace(in.Notes),
		ScheduledAt:        in.ScheduledAt,
		IsFixed:            in.IsFixed,
		PomodoroEstimation: in.PomodoroEstimation,
		CreatedAt:          createdAt,
	}

	if in.StartTime != "" {
		start, err := domain.ParseClock(in.StartTime)
		if err != nil {
			errs = append(errs, fmt.Errorf("start_time: %w", err))
		} else {
			task.StartTime = &start
		}
	}

	if in.EndTime != "" {
		end, err := domain.ParseClock(in.EndTime)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("end_time: %w", err))
		case in.StartTime == "":
			errs = append(errs, errors.New("end_time requires start_time"))
		default:
			task.EndTime = &end
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTask, errors.Join(errs...))
	}

	return task, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Task, error) {
	task, err := in.build(NewID(), s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	slog.InfoContext(ctx, "task created",
		slog.String("task_id", task.ID),
		slog.String("scheduled_at", task.ScheduledAt),
		slog.Bool("is_fixed", task.IsFixed),
	)

	return task, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "task deleted", slog.String("task_id", id))
	return nil
}

func (s *Service) ToggleCompleted(ctx context.Context, id string) (*domain.Task, error) {
	return s.update(ctx, id, func(t *domain.Task) {
		t.Completed = !t.Completed
	})
}

// RecordPomodoro counts one finished work interval against the task.
func (s *Service) RecordPomodoro(ctx context.Context, id string) (*domain.Task, error) {
	return s.update(ctx, id, func(t *domain.Task) {
		t.PomodoroCompleted++
	})
}

func (s *Service) update(ctx context.Context, id string, mutate func(*domain.Task)) (*domain.Task, error) {
	task, err := s.repo.UpdateTask(ctx, id, mutate)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}

	slog.DebugContext(ctx, "task updated",
		slog.String("task_id", id),
		slog.Bool("completed", task.Completed),
		slog.Int("pomodoro_completed", task.PomodoroCompleted),
	)

	return task, nil
}

func (s *Service) ListDay(ctx context.Context, day string) ([]domain.Task, error) {
	if err := domain.ValidateDay(day); err != nil {
		return nil, err
	}
	return s.repo.ListTasksForDay(ctx, day)
}

func (s *Service) ListInbox(ctx context.Context) ([]domain.Task, error) {
	return s.repo.ListInboxTasks(ctx)
}
