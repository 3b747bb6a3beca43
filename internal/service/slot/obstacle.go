package slot

import (
	"fmt"
	"sort"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/duration"
)

// Obstacle is a fixed task's occupied span.
type Obstacle struct {
	TaskID   string
	Interval domain.Interval
}

// OverlapError names two fixed tasks whose spans overlap.
type OverlapError struct {
	First  Obstacle
	Second Obstacle
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("fixed task %s [%s-%s) overlaps fixed task %s [%s-%s)",
		e.First.TaskID, domain.Clock(e.First.Interval.Start), domain.Clock(e.First.Interval.End),
		e.Second.TaskID, domain.Clock(e.Second.Interval.Start), domain.Clock(e.Second.Interval.End),
	)
}

func (e *OverlapError) Unwrap() error {
	return domain.ErrOverlappingFixedTasks
}

// FixedObstacles collects every fixed task with a start time, except excludeID.
// The result is sorted by start.
func FixedObstacles(tasks []domain.Task, settings domain.Settings, excludeID string) []Obstacle {
	obstacles := make([]Obstacle, 0)
	for i := range tasks {
		task := &tasks[i]
		if task.ID == excludeID || !task.IsFixed || task.StartTime == nil {
			continue
		}
		iv, _ := duration.Interval(task, settings)
		obstacles = append(obstacles, Obstacle{TaskID: task.ID, Interval: iv})
	}

	sort.SliceStable(obstacles, func(i, j int) bool {
		return obstacles[i].Interval.Start < obstacles[j].Interval.Start
	})

	return obstacles
}

// FirstCollision returns the first obstacle overlapping iv.
func FirstCollision(obstacles []Obstacle, iv domain.Interval) (Obstacle, bool) {
	for _, o := range obstacles {
		if iv.Overlaps(o.Interval) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// FindFreeStart moves start forward past colliding obstacles until a span of length fits.
// Each jump lands on a colliding obstacle's end, which is strictly after the current
// start, so the loop ends after at most len(obstacles) jumps even if obstacles overlap.
func FindFreeStart(obstacles []Obstacle, start, length int) (int, int) {
	jumps := 0
	for jumps <= len(obstacles) {
		o, hit := FirstCollision(obstacles, domain.NewInterval(start, length))
		if !hit {
			return start, jumps
		}
		start = o.Interval.End
		jumps++
	}
	return start, jumps
}

// ValidateObstacles reports the first pair of overlapping obstacles.
// Obstacles must be sorted by start.
func ValidateObstacles(obstacles []Obstacle) error {
	for i := 1; i < len(obstacles); i++ {
		for j := 0; j < i; j++ {
			if obstacles[j].Interval.Overlaps(obstacles[i].Interval) {
				return &OverlapError{First: obstacles[j], Second: obstacles[i]}
			}
		}
	}
	return nil
}
