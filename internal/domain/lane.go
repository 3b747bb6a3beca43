package domain

// Lane is how the day scheduler treats a task during recalculation.
type Lane string

const (
	LaneCompleted Lane = "completed"
	LaneFixed     Lane = "fixed"
	LaneUntimed   Lane = "untimed"
	LaneTimed     Lane = "timed"
)

func (l Lane) String() string {
	return string(l)
}

func (l Lane) IsFixed() bool {
	return l == LaneFixed
}

// IsMovable reports whether the scheduler may assign a new start time.
func (l Lane) IsMovable() bool {
	return l == LaneTimed
}
