package schedule

import (
	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

type SkipReason string

const (
	SkipNotFound  SkipReason = "not_found"
	SkipDuplicate SkipReason = "duplicate"
	SkipCompleted SkipReason = "completed"
	SkipFixed     SkipReason = "fixed"
	SkipUntimed   SkipReason = "untimed"
)

// Placement is the start time the planner chose for a movable timed task.
type Placement struct {
	TaskID   string        `json:"task_id"`
	Previous *domain.Clock `json:"previous_start_time"`
	Start    domain.Clock  `json:"start_time"`
	End      domain.Clock  `json:"end_time"`
	Minutes  int           `json:"duration_minutes"`
	Jumps    int           `json:"obstacle_jumps"`
	Changed  bool          `json:"changed"`
}

func (p Placement) WasShifted() bool {
	return p.Jumps > 0
}

type SkippedTask struct {
	TaskID string     `json:"task_id"`
	Reason SkipReason `json:"reason"`
}

type FailedTask struct {
	TaskID string `json:"task_id"`
	Error  string `json:"error"`
}

type PlanInput struct {
	OrderedTaskIDs []string
	StartingTaskID string
	Tasks          []domain.Task
	Settings       domain.Settings
}

type DayPlan struct {
	Placements []Placement
	Skipped    []SkippedTask
	// Cursor is where the next movable task would have been placed.
	Cursor int
}

type RecalculateRequest struct {
	Day            string
	OrderedTaskIDs []string
	StartingTaskID string
	RunID          string
}

type Result struct {
	Day          string        `json:"day"`
	RunID        string        `json:"run_id,omitempty"`
	Placements   []Placement   `json:"placements"`
	Skipped      []SkippedTask `json:"skipped"`
	Failed       []FailedTask  `json:"failed,omitempty"`
	PlacedCount  int           `json:"placed_count"`
	ChangedCount int           `json:"changed_count"`
	ShiftedCount int           `json:"shifted_count"`
	SkippedCount int           `json:"skipped_count"`
	FailedCount  int           `json:"failed_count"`
}

type SlotCheck struct {
	TaskID         string       `json:"task_id"`
	ProposedStart  domain.Clock `json:"proposed_start"`
	ProposedEnd    domain.Clock `json:"proposed_end"`
	Free           bool         `json:"free"`
	ConflictTaskID string       `json:"conflict_task_id,omitempty"`
}
