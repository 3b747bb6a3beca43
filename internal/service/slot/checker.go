package slot

import (
	"log/slog"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/duration"
)

// Checker validates manual start-time edits against fixed tasks.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

// IsTimeSlotFree reports whether taskID can start at proposed without colliding with
// any other fixed task. Movable tasks never block the slot.
func (c *Checker) IsTimeSlotFree(
	taskID string,
	proposed domain.Clock,
	todayTasks []domain.Task,
	settings domain.Settings,
) bool {
	_, collides := c.FindCollision(taskID, proposed, todayTasks, settings)
	return !collides
}

// FindCollision returns the fixed task that the proposed placement would collide with.
func (c *Checker) FindCollision(
	taskID string,
	proposed domain.Clock,
	todayTasks []domain.Task,
	settings domain.Settings,
) (Obstacle, bool) {
	var moving *domain.Task
	for i := range todayTasks {
		if todayTasks[i].ID == taskID {
			moving = &todayTasks[i]
			break
		}
	}

	proposedSpan := domain.NewInterval(proposed.Minutes(), duration.Minutes(moving, settings))
	obstacles := FixedObstacles(todayTasks, settings, taskID)

	o, hit := FirstCollision(obstacles, proposedSpan)
	if hit {
		slog.Debug("slot check: collision with fixed task",
			slog.String("task_id", taskID),
			slog.String("proposed_start", proposed.String()),
			slog.String("fixed_task_id", o.TaskID),
		)
	}
	return o, hit
}
