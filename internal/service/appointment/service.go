package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-day-scheduler/internal/observability/tracing"
)

// TaskIDPrefix marks tasks mirrored from the external calendar.
const TaskIDPrefix = "gcal_"

type ImportResult struct {
	Day      string `json:"day"`
	Imported int    `json:"imported"`
	Removed  int    `json:"removed"`
	Ignored  int    `json:"ignored"`
}

type Service struct {
	source          domain.AppointmentSource
	taskRepo        domain.TaskRepository
	calendarID      string
	scheduleMetrics *metrics.ScheduleMetrics
	now             func() time.Time
}

// NewService returns a service whose Import fails with domain.ErrCalendarImportDisabled
// when source is nil.
func NewService(
	source domain.AppointmentSource,
	taskRepo domain.TaskRepository,
	calendarID string,
	scheduleMetrics *metrics.ScheduleMetrics,
) *Service {
	return &Service{
		source:          source,
		taskRepo:        taskRepo,
		calendarID:      calendarID,
		scheduleMetrics: scheduleMetrics,
		now:             time.Now,
	}
}

func TaskID(eventID string) string {
	return TaskIDPrefix + eventID
}

// Import mirrors the day's timed calendar events as fixed tasks. Cancelled events
// remove a previously mirrored task.
func (s *Service) Import(ctx context.Context, day string) (*ImportResult, error) {
	if s.source == nil {
		return nil, domain.ErrCalendarImportDisabled
	}
	if err := domain.ValidateDay(day); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartCalendarImportSpan(ctx, day, s.calendarID)
	defer span.End()

	appointments, err := s.source.AppointmentsForDay(ctx, day)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to fetch appointments for %s: %w", day, err)
	}

	result := &ImportResult{Day: day}

	for _, a := range appointments {
		switch {
		case a.Cancelled:
			removed, err := s.remove(ctx, a)
			if err != nil {
				tracing.RecordError(span, err)
				return nil, err
			}
			if removed {
				result.Removed++
			} else {
				result.Ignored++
			}
		case a.AllDay, a.Day != day:
			result.Ignored++
		default:
			if err := s.upsert(ctx, day, a); err != nil {
				tracing.RecordError(span, err)
				return nil, err
			}
			result.Imported++
		}
	}

	tracing.RecordError(span, nil)
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordCalendarImport(ctx, result.Imported)
	}

	slog.InfoContext(ctx, "calendar appointments imported",
		slog.String("day", day),
		slog.Int("imported", result.Imported),
		slog.Int("removed", result.Removed),
		slog.Int("ignored", result.Ignored),
	)

	return result, nil
}

func (s *Service) upsert(ctx context.Context, day string, a domain.Appointment) error {
	id := TaskID(a.EventID)

	apply := func(task *domain.Task) {
		task.Text = a.Title
		task.ScheduledAt = day
		task.StartTime = domain.ClockPtr(a.Start.Normalize())
		task.EndTime = domain.ClockPtr(a.End.Normalize())
		task.IsFixed = true
		task.PomodoroEstimation = 0
	}

	// completion and creation time of an already mirrored task are kept
	_, err := s.taskRepo.UpdateTask(ctx, id, apply)
	if errors.Is(err, domain.ErrTaskNotFound) {
		task := &domain.Task{
			ID:        id,
			CreatedAt: s.now().UTC(),
		}
		apply(task)
		err = s.taskRepo.SaveTask(ctx, task)
	}
	if err != nil {
		return fmt.Errorf("failed to save task %s: %w", id, err)
	}

	slog.DebugContext(ctx, "appointment mirrored",
		slog.String("task_id", id),
		slog.String("start_time", a.Start.Normalize().String()),
		slog.String("end_time", a.End.Normalize().String()),
	)

	return nil
}

func (s *Service) remove(ctx context.Context, a domain.Appointment) (bool, error) {
	id := TaskID(a.EventID)

	err := s.taskRepo.DeleteTask(ctx, id)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return true, nil
}
