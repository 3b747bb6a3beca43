package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

const (
	idPrefix          = "proj_"
	milestoneIDPrefix = "ms_"
)

type MilestoneInput struct {
	Title string `json:"title"`
}

type CreateInput struct {
	Title      string           `json:"title"`
	ContextID  string           `json:"context_id"`
	Milestones []MilestoneInput `json:"milestones"`
}

type Service struct {
	projectRepo domain.ProjectRepository
	taskRepo    domain.TaskRepository
	now         func() time.Time
	newID       func() string
}

func NewService(projectRepo domain.ProjectRepository, taskRepo domain.TaskRepository) *Service {
	return &Service{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (in CreateInput) build(s *Service) (*domain.Project, error) {
	var errs []error

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs = append(errs, errors.New("title is required"))
	}

	project := &domain.Project{
		ID:         idPrefix + s.newID(),
		Title:      title,
		ContextID:  in.ContextID,
		Status:     domain.ProjectActive,
		Milestones: make([]domain.Milestone, 0, len(in.Milestones)),
		CreatedAt:  s.now().UTC(),
	}

	for i, m := range in.Milestones {
		milestoneTitle := strings.TrimSpace(m.Title)
		if milestoneTitle == "" {
			errs = append(errs, fmt.Errorf("milestones[%d]: title is required", i))
			continue
		}
		project.Milestones = append(project.Milestones, domain.Milestone{
			ID:    milestoneIDPrefix + s.newID(),
			Title: milestoneTitle,
			Order: i + 1,
		})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidProject, errors.Join(errs...))
	}

	return project, nil
}

// Create stores a new active project. Milestones keep the order they were given in.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Project, error) {
	project, err := in.build(s)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	slog.InfoContext(ctx, "project created",
		slog.String("project_id", project.ID),
		slog.Int("milestones", len(project.Milestones)),
	)

	return project, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projectRepo.GetProject(ctx, id)
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Project, 0, len(projects))
	for i := range projects {
		if projects[i].IsActive() {
			active = append(active, projects[i])
		}
	}
	return active, nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projectRepo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Status = domain.ProjectArchived
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project %s: %w", id, err)
	}

	slog.InfoContext(ctx, "project archived", slog.String("project_id", id))
	return project, nil
}

func (s *Service) Tasks(ctx context.Context, id string) ([]domain.Task, error) {
	if _, err := s.projectRepo.GetProject(ctx, id); err != nil {
		return nil, err
	}
	return s.taskRepo.ListTasksForProject(ctx, id)
}

func (s *Service) Progress(ctx context.Context, id string) (*domain.ProjectProgress, error) {
	tasks, err := s.Tasks(ctx, id)
	if err != nil {
		return nil, err
	}

	progress := domain.Progress(id, tasks)
	return &progress, nil
}
