package project

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/infra/memstore"
)

func newTestService(projectRepo domain.ProjectRepository, taskRepo domain.TaskRepository) *Service {
	svc := NewService(projectRepo, taskRepo)
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return strconv.Itoa(n)
	}
	return svc
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newTestService(store, store)

	project, err := svc.Create(ctx, CreateInput{
		Title:      "  Marathon  ",
		ContextID:  "ctx_sport",
		Milestones: []MilestoneInput{{Title: "buy shoes"}, {Title: "first 10k"}},
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if project.ID != "proj_1" || project.Title != "Marathon" || !project.IsActive() {
		t.Errorf("Create() = %+v", project)
	}
	if len(project.Milestones) != 2 {
		t.Fatalf("milestones = %d, want 2", len(project.Milestones))
	}
	for i, m := range project.Milestones {
		if m.Order != i+1 || !strings.HasPrefix(m.ID, "ms_") {
			t.Errorf("milestones[%d] = %+v", i, m)
		}
	}

	stored, err := store.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject() unexpected error: %v", err)
	}
	if stored.Milestones[1].Title != "first 10k" {
		t.Errorf("stored milestones = %+v", stored.Milestones)
	}
}

func TestCreate_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	projectRepo := domain.NewMockProjectRepository(ctrl)
	projectRepo.EXPECT().SaveProject(gomock.Any(), gomock.Any()).Times(0)

	_, err := newTestService(projectRepo, nil).Create(context.Background(), CreateInput{
		Title:      " ",
		Milestones: []MilestoneInput{{Title: "ok"}, {Title: ""}},
	})
	if !errors.Is(err, domain.ErrInvalidProject) {
		t.Fatalf("Create() error = %v, want ErrInvalidProject", err)
	}
	for _, want := range []string{"title is required", "milestones[1]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestListActiveAndArchive(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newTestService(store, store)

	first, _ := svc.Create(ctx, CreateInput{Title: "first"})
	second, _ := svc.Create(ctx, CreateInput{Title: "second"})

	archived, err := svc.Archive(ctx, first.ID)
	if err != nil {
		t.Fatalf("Archive() unexpected error: %v", err)
	}
	if archived.Status != domain.ProjectArchived {
		t.Errorf("status = %s, want archived", archived.Status)
	}

	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].ID != second.ID {
		t.Errorf("ListActive() = %+v, want [%s]", active, second.ID)
	}

	if _, err := svc.Archive(ctx, "proj_missing"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("Archive(missing) error = %v, want ErrProjectNotFound", err)
	}
}

func TestProgress(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newTestService(store, store)

	project, _ := svc.Create(ctx, CreateInput{Title: "marathon"})

	for i, completed := range []bool{true, true, false} {
		if err := store.SaveTask(ctx, &domain.Task{
			ID:        "t" + strconv.Itoa(i),
			ProjectID: project.ID,
			Completed: completed,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	_ = store.SaveTask(ctx, &domain.Task{ID: "other", ProjectID: "proj_other", Completed: true})

	progress, err := svc.Progress(ctx, project.ID)
	if err != nil {
		t.Fatalf("Progress() unexpected error: %v", err)
	}
	want := domain.ProjectProgress{ProjectID: project.ID, TotalTasks: 3, CompletedTasks: 2, Percent: 67}
	if *progress != want {
		t.Errorf("Progress() = %+v, want %+v", *progress, want)
	}

	tasks, err := svc.Tasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("Tasks() unexpected error: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("Tasks() len = %d, want 3", len(tasks))
	}

	if _, err := svc.Progress(ctx, "proj_missing"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("Progress(missing) error = %v, want ErrProjectNotFound", err)
	}
}

func TestProgress_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeErr := errors.New("connection refused")
	projectRepo := domain.NewMockProjectRepository(ctrl)
	taskRepo := domain.NewMockTaskRepository(ctrl)
	projectRepo.EXPECT().GetProject(gomock.Any(), "p").Return(&domain.Project{ID: "p"}, nil)
	taskRepo.EXPECT().ListTasksForProject(gomock.Any(), "p").Return(nil, storeErr)

	if _, err := newTestService(projectRepo, taskRepo).Progress(context.Background(), "p"); !errors.Is(err, storeErr) {
		t.Errorf("Progress() error = %v, want store error", err)
	}
}
