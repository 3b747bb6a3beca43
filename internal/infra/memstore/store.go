package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

// Store keeps tasks, projects and settings in process memory. It satisfies
// domain.TaskRepository, domain.ProjectRepository and domain.SettingsRepository.
type Store struct {
	mu       sync.RWMutex
	tasks    map[string]domain.Task
	projects map[string]domain.Project
	settings *domain.Settings
}

func New() *Store {
	return &Store{
		tasks:    make(map[string]domain.Task),
		projects: make(map[string]domain.Project),
	}
}

func (s *Store) GetTask(_ context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	task, ok := s.tasks[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	// stored values share clock pointers, hand out a copy
	c := task.Clone()
	return &c, nil
}

func (s *Store) ListTasksForDay(_ context.Context, day string) ([]domain.Task, error) {
	return s.filter(func(t *domain.Task) bool { return t.ScheduledAt == day }), nil
}

func (s *Store) ListInboxTasks(_ context.Context) ([]domain.Task, error) {
	return s.filter((*domain.Task).IsInbox), nil
}

func (s *Store) ListTasksForProject(_ context.Context, projectID string) ([]domain.Task, error) {
	return s.filter(func(t *domain.Task) bool { return t.ProjectID == projectID }), nil
}

func (s *Store) filter(keep func(*domain.Task) bool) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if keep(&t) {
			tasks = append(tasks, t.Clone())
		}
	}

	slices.SortFunc(tasks, func(a, b domain.Task) int {
		switch {
		case domain.Less(a, b):
			return -1
		case domain.Less(b, a):
			return 1
		}
		return 0
	})

	return tasks
}

func (s *Store) SaveTask(_ context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidTask
	}

	s.mu.Lock()
	s.tasks[task.ID] = task.Clone()
	s.mu.Unlock()

	return nil
}

func (s *Store) UpdateTask(_ context.Context, id string, mutate func(*domain.Task)) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	task := stored.Clone()
	mutate(&task)
	task.ID = id
	s.tasks[id] = task.Clone()

	return &task, nil
}

func (s *Store) UpdateStartTime(_ context.Context, id string, start *domain.Clock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}

	task.StartTime = nil
	if start != nil {
		task.StartTime = domain.ClockPtr(*start)
	}
	s.tasks[id] = task

	return nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)

	return nil
}

func (s *Store) GetProject(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	project, ok := s.projects[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	c := project.Clone()
	return &c, nil
}

func (s *Store) ListProjects(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p.Clone())
	}

	slices.SortFunc(projects, func(a, b domain.Project) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return projects, nil
}

func (s *Store) SaveProject(_ context.Context, project *domain.Project) error {
	if project == nil || project.ID == "" {
		return domain.ErrInvalidProject
	}

	s.mu.Lock()
	s.projects[project.ID] = project.Clone()
	s.mu.Unlock()

	return nil
}

func (s *Store) GetSettings(_ context.Context) (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}

	settings := *s.settings
	return &settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidSettings
	}

	copied := *settings

	s.mu.Lock()
	s.settings = &copied
	s.mu.Unlock()

	return nil
}
