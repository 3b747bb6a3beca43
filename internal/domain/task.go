package domain

import (
	"time"
)

type Task struct {
	ID                 string    `json:"id"`
	Text               string    `json:"text"`
	ProjectID          string    `json:"project_id,omitempty"`
	MilestoneID        string    `json:"milestone_id,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	ScheduledAt        string    `json:"scheduled_at,omitempty"`
	StartTime          *Clock    `json:"start_time"`
	EndTime            *Clock    `json:"end_time"`
	IsFixed            bool      `json:"is_fixed"`
	PomodoroEstimation int       `json:"pomodoro_estimation"`
	PomodoroCompleted  int       `json:"pomodoro_completed"`
	Completed          bool      `json:"completed"`
	CreatedAt          time.Time `json:"created_at"`
}

func (t *Task) HasStartTime() bool {
	return t.StartTime != nil
}

// IsAppointment reports whether the task spans its own start/end instead of pomodoro cycles.
func (t *Task) IsAppointment() bool {
	return t.IsFixed && t.PomodoroEstimation == 0 && t.StartTime != nil
}

// IsInbox mirrors the journal's inbox filter: unscheduled, open and outside any project.
func (t *Task) IsInbox() bool {
	return t.ScheduledAt == "" && t.ProjectID == "" && !t.Completed
}

func (t *Task) Clone() Task {
	c := *t
	if t.StartTime != nil {
		c.StartTime = ClockPtr(*t.StartTime)
	}
	if t.EndTime != nil {
		c.EndTime = ClockPtr(*t.EndTime)
	}
	return c
}

// Less orders tasks by creation time, then id.
func Less(a, b Task) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
