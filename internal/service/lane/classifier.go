package lane

import (
	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify decides how recalculation treats a task. Completion wins over everything,
// so a completed fixed task is frozen rather than acting as a cursor anchor.
func (c *Classifier) Classify(task *domain.Task) domain.Lane {
	switch {
	case task.Completed:
		return domain.LaneCompleted
	case task.IsFixed:
		return domain.LaneFixed
	case task.StartTime == nil:
		return domain.LaneUntimed
	default:
		return domain.LaneTimed
	}
}
