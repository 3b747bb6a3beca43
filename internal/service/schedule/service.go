package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-day-scheduler/internal/config"
	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-day-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/duration"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/lane"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/slot"
)

type Service struct {
	taskRepo        domain.TaskRepository
	settingsRepo    domain.SettingsRepository
	planner         *Planner
	checker         *slot.Checker
	overlapPolicy   config.FixedOverlapPolicy
	scheduleMetrics *metrics.ScheduleMetrics
	resultRecorder  domain.ScheduleResultRecorder
}

func NewService(
	taskRepo domain.TaskRepository,
	settingsRepo domain.SettingsRepository,
	laneClassifier *lane.Classifier,
	slotChecker *slot.Checker,
	overlapPolicy config.FixedOverlapPolicy,
	scheduleMetrics *metrics.ScheduleMetrics,
	resultRecorder domain.ScheduleResultRecorder,
) *Service {
	return &Service{
		taskRepo:        taskRepo,
		settingsRepo:    settingsRepo,
		planner:         NewPlanner(laneClassifier),
		checker:         slotChecker,
		overlapPolicy:   overlapPolicy,
		scheduleMetrics: scheduleMetrics,
		resultRecorder:  resultRecorder,
	}
}

// Recalculate re-times the day's movable tasks in the given order and persists every
// start time that changed.
func (s *Service) Recalculate(ctx context.Context, req RecalculateRequest) (*Result, error) {
	if err := domain.ValidateDay(req.Day); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartRecalculationSpan(ctx, req.Day, req.StartingTaskID, len(req.OrderedTaskIDs))
	defer span.End()

	startedAt := time.Now()

	result, err := s.recalculate(ctx, req)
	if err != nil {
		tracing.RecordRecalculationResult(span, 0, 0, 0, 0, 0, err)
		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordRecalculation(ctx, "error", time.Since(startedAt))
		}
		return nil, err
	}

	elapsed := time.Since(startedAt)
	tracing.RecordRecalculationResult(span,
		result.PlacedCount, result.ChangedCount, result.ShiftedCount, result.SkippedCount, result.FailedCount, nil)

	outcome := "success"
	if result.FailedCount > 0 {
		outcome = "partial"
	}
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordRecalculation(ctx, outcome, elapsed)
	}

	s.record(ctx, req, result, elapsed)

	slog.InfoContext(ctx, "day recalculated",
		slog.String("day", req.Day),
		slog.String("starting_task_id", req.StartingTaskID),
		slog.Int("placed", result.PlacedCount),
		slog.Int("changed", result.ChangedCount),
		slog.Int("shifted", result.ShiftedCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

func (s *Service) recalculate(ctx context.Context, req RecalculateRequest) (*Result, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	tasks, err := s.taskRepo.ListTasksForDay(ctx, req.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for %s: %w", req.Day, err)
	}

	obstacles := slot.FixedObstacles(tasks, *settings, "")
	if overlapErr := slot.ValidateObstacles(obstacles); overlapErr != nil {
		if s.overlapPolicy != config.FixedOverlapTolerate {
			slog.WarnContext(ctx, "refusing to recalculate day with overlapping fixed tasks",
				slog.String("day", req.Day),
				slog.String("error", overlapErr.Error()),
			)
			return nil, fmt.Errorf("recalculate %s: %w", req.Day, overlapErr)
		}
		slog.WarnContext(ctx, "fixed tasks overlap, recalculating anyway",
			slog.String("day", req.Day),
			slog.String("error", overlapErr.Error()),
		)
	}

	plan := s.planner.PlanDay(PlanInput{
		OrderedTaskIDs: req.OrderedTaskIDs,
		StartingTaskID: req.StartingTaskID,
		Tasks:          tasks,
		Settings:       *settings,
	})

	result := &Result{
		Day:        req.Day,
		RunID:      req.RunID,
		Placements: make([]Placement, 0, len(plan.Placements)),
		Skipped:    plan.Skipped,
	}

	for _, placement := range plan.Placements {
		if placement.Changed {
			start := placement.Start
			if err := s.taskRepo.UpdateStartTime(ctx, placement.TaskID, &start); err != nil {
				if errors.Is(err, domain.ErrTaskNotFound) {
					slog.DebugContext(ctx, "task vanished before its start time was written",
						slog.String("task_id", placement.TaskID),
					)
					result.Skipped = append(result.Skipped, SkippedTask{TaskID: placement.TaskID, Reason: SkipNotFound})
					continue
				}

				slog.WarnContext(ctx, "failed to persist start time",
					slog.String("task_id", placement.TaskID),
					slog.String("start_time", start.String()),
					slog.String("error", err.Error()),
				)
				result.Failed = append(result.Failed, FailedTask{TaskID: placement.TaskID, Error: err.Error()})
				if s.scheduleMetrics != nil {
					s.scheduleMetrics.RecordPlacement(ctx, domain.LaneTimed.String(), "failed")
				}
				continue
			}
			result.ChangedCount++
		}

		if placement.WasShifted() {
			result.ShiftedCount++
			slog.DebugContext(ctx, "task pushed past fixed tasks",
				slog.String("task_id", placement.TaskID),
				slog.String("start_time", placement.Start.String()),
				slog.Int("jumps", placement.Jumps),
			)
		}

		if s.scheduleMetrics != nil {
			outcome := "unchanged"
			if placement.Changed {
				outcome = "moved"
			}
			s.scheduleMetrics.RecordPlacement(ctx, domain.LaneTimed.String(), outcome)
			s.scheduleMetrics.RecordObstacleJumps(ctx, placement.Jumps)
		}

		result.Placements = append(result.Placements, placement)
	}

	if s.scheduleMetrics != nil {
		for _, skipped := range result.Skipped {
			s.scheduleMetrics.RecordPlacement(ctx, string(skipped.Reason), "skipped")
		}
	}

	result.PlacedCount = len(result.Placements)
	result.SkippedCount = len(result.Skipped)
	result.FailedCount = len(result.Failed)

	return result, nil
}

func (s *Service) record(ctx context.Context, req RecalculateRequest, result *Result, elapsed time.Duration) {
	if s.resultRecorder == nil {
		return
	}

	record := domain.RecalculationRecord{
		RunID:        req.RunID,
		Day:          req.Day,
		Anchor:       req.StartingTaskID,
		RecordedAt:   time.Now().UTC(),
		PlacedCount:  result.PlacedCount,
		ChangedCount: result.ChangedCount,
		ShiftedCount: result.ShiftedCount,
		SkippedCount: result.SkippedCount,
		FailedCount:  result.FailedCount,
		Duration:     elapsed,
	}

	if err := s.resultRecorder.RecordRecalculation(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record recalculation result",
			slog.String("day", req.Day),
			slog.String("error", err.Error()),
		)
	}
}

// CheckSlot reports whether taskID may start at proposed without hitting a fixed task.
func (s *Service) CheckSlot(ctx context.Context, day, taskID string, proposed domain.Clock) (*SlotCheck, error) {
	if err := domain.ValidateDay(day); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSlotCheckSpan(ctx, day, taskID, proposed.String())
	defer span.End()

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	tasks, err := s.taskRepo.ListTasksForDay(ctx, day)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to list tasks for %s: %w", day, err)
	}

	var moving *domain.Task
	for i := range tasks {
		if tasks[i].ID == taskID {
			moving = &tasks[i]
			break
		}
	}
	if moving == nil {
		tracing.RecordError(span, domain.ErrTaskNotFound)
		return nil, fmt.Errorf("task %s on %s: %w", taskID, day, domain.ErrTaskNotFound)
	}

	conflict, collides := s.checker.FindCollision(taskID, proposed, tasks, *settings)

	check := &SlotCheck{
		TaskID:        taskID,
		ProposedStart: proposed.Normalize(),
		ProposedEnd:   proposed.Add(duration.Minutes(moving, *settings)),
		Free:          !collides,
	}
	if collides {
		check.ConflictTaskID = conflict.TaskID
	}

	tracing.RecordSlotCheckResult(span, check.Free, check.ConflictTaskID)
	tracing.RecordError(span, nil)
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordSlotCheck(ctx, check.Free)
	}

	return check, nil
}

// MoveTask applies a manual start-time edit after checking it against fixed tasks.
func (s *Service) MoveTask(ctx context.Context, day, taskID string, proposed domain.Clock) (*domain.Task, error) {
	check, err := s.CheckSlot(ctx, day, taskID, proposed)
	if err != nil {
		return nil, err
	}

	if !check.Free {
		slog.InfoContext(ctx, "manual move rejected",
			slog.String("task_id", taskID),
			slog.String("proposed_start", check.ProposedStart.String()),
			slog.String("conflict_task_id", check.ConflictTaskID),
		)
		return nil, fmt.Errorf("%w: %s", domain.ErrSlotOccupied, check.ConflictTaskID)
	}

	start := check.ProposedStart
	if err := s.taskRepo.UpdateStartTime(ctx, taskID, &start); err != nil {
		return nil, fmt.Errorf("failed to update start time of %s: %w", taskID, err)
	}

	slog.InfoContext(ctx, "task moved",
		slog.String("task_id", taskID),
		slog.String("start_time", start.String()),
	)

	return s.taskRepo.GetTask(ctx, taskID)
}

// TaskDuration returns the minutes a task occupies under the current settings.
func (s *Service) TaskDuration(ctx context.Context, taskID string) (int, error) {
	task, err := s.taskRepo.GetTask(ctx, taskID)
	if err != nil {
		return 0, err
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}

	return duration.Minutes(task, *settings), nil
}
