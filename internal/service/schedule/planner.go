package schedule

import (
	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/duration"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/lane"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/slot"
)

// Planner packs a day's movable timed tasks back-to-back in the caller's order,
// jumping over fixed tasks. It never backtracks to fill an earlier gap.
type Planner struct {
	classifier *lane.Classifier
}

func NewPlanner(classifier *lane.Classifier) *Planner {
	return &Planner{
		classifier: classifier,
	}
}

// PlanDay is a pure function of its input; persisting the placements is up to the caller.
// An id repeated in OrderedTaskIDs is placed once and every later occurrence is skipped as duplicate.
func (p *Planner) PlanDay(in PlanInput) *DayPlan {
	byID := make(map[string]*domain.Task, len(in.Tasks))
	for i := range in.Tasks {
		byID[in.Tasks[i].ID] = &in.Tasks[i]
	}

	cursor := 0
	if anchor, ok := byID[in.StartingTaskID]; ok && anchor.StartTime != nil {
		cursor = anchor.StartTime.Minutes()
	}

	// Completed fixed tasks still block their slot.
	obstacles := slot.FixedObstacles(in.Tasks, in.Settings, "")

	plan := &DayPlan{
		Placements: make([]Placement, 0, len(in.OrderedTaskIDs)),
		Skipped:    make([]SkippedTask, 0),
	}
	seen := make(map[string]struct{}, len(in.OrderedTaskIDs))

	for _, id := range in.OrderedTaskIDs {
		task, ok := byID[id]
		if !ok {
			plan.skip(id, SkipNotFound)
			continue
		}
		if _, dup := seen[id]; dup {
			plan.skip(id, SkipDuplicate)
			continue
		}
		seen[id] = struct{}{}

		switch p.classifier.Classify(task) {
		case domain.LaneCompleted:
			plan.skip(id, SkipCompleted)

		case domain.LaneFixed:
			if iv, timed := duration.Interval(task, in.Settings); timed && iv.End > cursor {
				cursor = iv.End
			}
			plan.skip(id, SkipFixed)

		case domain.LaneUntimed:
			plan.skip(id, SkipUntimed)

		case domain.LaneTimed:
			length := duration.Minutes(task, in.Settings)
			start, jumps := slot.FindFreeStart(obstacles, cursor, length)

			newStart := domain.Clock(start).Normalize()
			previous := domain.ClockPtr(*task.StartTime)

			plan.Placements = append(plan.Placements, Placement{
				TaskID:   id,
				Previous: previous,
				Start:    newStart,
				End:      domain.Clock(start + length).Normalize(),
				Minutes:  length,
				Jumps:    jumps,
				Changed:  previous.Normalize() != newStart,
			})

			cursor = start + length
		}
	}

	plan.Cursor = cursor
	return plan
}

func (d *DayPlan) skip(taskID string, reason SkipReason) {
	d.Skipped = append(d.Skipped, SkippedTask{TaskID: taskID, Reason: reason})
}
