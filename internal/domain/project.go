package domain

import (
	"context"
	"math"
	"time"
)

//go:generate mockgen -source=project.go -destination=project_mock.go -package=domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

type Milestone struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Order is 1-based and follows the order milestones were given at creation.
	Order int `json:"order"`
}

type Project struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	ContextID  string        `json:"context_id,omitempty"`
	Status     ProjectStatus `json:"status"`
	Milestones []Milestone   `json:"milestones"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (p *Project) IsActive() bool {
	return p.Status == ProjectActive
}

func (p *Project) HasMilestone(id string) bool {
	for _, m := range p.Milestones {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (p *Project) Clone() Project {
	c := *p
	c.Milestones = append([]Milestone(nil), p.Milestones...)
	return c
}

type ProjectProgress struct {
	ProjectID      string `json:"project_id"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	Percent        int    `json:"percent"`
}

// Progress rounds the share of completed tasks to a whole percent. A project without
// tasks is at 0.
func Progress(projectID string, tasks []Task) ProjectProgress {
	progress := ProjectProgress{ProjectID: projectID, TotalTasks: len(tasks)}
	for i := range tasks {
		if tasks[i].Completed {
			progress.CompletedTasks++
		}
	}
	if progress.TotalTasks > 0 {
		progress.Percent = int(math.Round(float64(progress.CompletedTasks) * 100 / float64(progress.TotalTasks)))
	}
	return progress
}

type ProjectRepository interface {
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	SaveProject(ctx context.Context, project *Project) error
}
