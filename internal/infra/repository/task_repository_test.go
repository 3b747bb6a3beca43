package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/testutil"
)

func clockPtr(s string) *domain.Clock {
	return domain.ClockPtr(domain.MustParseClock(s))
}

func TestSaveAndGetTaskSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")

	createdAt := time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC)
	in := &domain.Task{
		ID:                 "m",
		Text:               "standup",
		ScheduledAt:        "2026-10-15",
		StartTime:          clockPtr("09:30"),
		EndTime:            clockPtr("10:00"),
		IsFixed:            true,
		PomodoroEstimation: 0,
		CreatedAt:          createdAt,
	}

	if err := repo.SaveTask(ctx, in); err != nil {
		t.Fatalf("SaveTask() unexpected error: %v", err)
	}

	got, err := repo.GetTask(ctx, "m")
	if err != nil {
		t.Fatalf("GetTask() unexpected error: %v", err)
	}

	if got.StartTime.String() != "09:30" || got.EndTime.String() != "10:00" {
		t.Errorf("times = %s-%s, want 09:30-10:00", got.StartTime, got.EndTime)
	}
	if !got.IsFixed || got.Text != "standup" || !got.CreatedAt.Equal(createdAt) {
		t.Errorf("GetTask() = %+v", got)
	}

	exists, err := client.Exists(ctx, "test:task:m").Result()
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if exists != 1 {
		t.Errorf("expected record under test:task:m")
	}
}

func TestGetTaskNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")

	if _, err := repo.GetTask(ctx, "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}

	start := domain.MustParseClock("09:00")
	if err := repo.UpdateStartTime(ctx, "missing", &start); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("UpdateStartTime: expected ErrTaskNotFound, got %v", err)
	}
	if err := repo.DeleteTask(ctx, "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("DeleteTask: expected ErrTaskNotFound, got %v", err)
	}
}

func TestListTasksForDayOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")
	base := time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC)

	for _, task := range []*domain.Task{
		{ID: "c", ScheduledAt: "2026-10-15", CreatedAt: base.Add(time.Minute)},
		{ID: "b", ScheduledAt: "2026-10-15", CreatedAt: base},
		{ID: "a", ScheduledAt: "2026-10-15", CreatedAt: base},
		{ID: "other", ScheduledAt: "2026-10-16", CreatedAt: base},
		{ID: "inbox", CreatedAt: base},
	} {
		if err := repo.SaveTask(ctx, task); err != nil {
			t.Fatalf("SaveTask(%s) error: %v", task.ID, err)
		}
	}

	tasks, err := repo.ListTasksForDay(ctx, "2026-10-15")
	if err != nil {
		t.Fatalf("ListTasksForDay() error: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("tasks[%d] = %s, want %s", i, tasks[i].ID, id)
		}
	}

	inbox, err := repo.ListInboxTasks(ctx)
	if err != nil {
		t.Fatalf("ListInboxTasks() error: %v", err)
	}
	if len(inbox) != 1 || inbox[0].ID != "inbox" {
		t.Errorf("ListInboxTasks() = %+v, want [inbox]", inbox)
	}
}

func TestSaveTaskMovesIndexes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")

	task := &domain.Task{ID: "a", Text: "write report"}
	if err := repo.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask() error: %v", err)
	}

	task.ScheduledAt = "2026-10-15"
	if err := repo.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask() error: %v", err)
	}

	inbox, _ := repo.ListInboxTasks(ctx)
	if len(inbox) != 0 {
		t.Errorf("expected empty inbox after scheduling, got %d", len(inbox))
	}

	isMember, err := client.SIsMember(ctx, "test:inbox", "a").Result()
	if err != nil {
		t.Fatalf("SIsMember() error: %v", err)
	}
	if isMember {
		t.Error("expected task removed from inbox set")
	}

	task.ScheduledAt = "2026-10-16"
	if err := repo.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask() error: %v", err)
	}

	old, _ := repo.ListTasksForDay(ctx, "2026-10-15")
	moved, _ := repo.ListTasksForDay(ctx, "2026-10-16")
	if len(old) != 0 || len(moved) != 1 {
		t.Errorf("expected task moved between days, got old=%d new=%d", len(old), len(moved))
	}
}

func TestUpdateStartTimeAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")

	if err := repo.SaveTask(ctx, &domain.Task{ID: "a", ScheduledAt: "2026-10-15", PomodoroEstimation: 2}); err != nil {
		t.Fatalf("SaveTask() error: %v", err)
	}

	start := domain.MustParseClock("14:00")
	if err := repo.UpdateStartTime(ctx, "a", &start); err != nil {
		t.Fatalf("UpdateStartTime() error: %v", err)
	}

	got, err := repo.GetTask(ctx, "a")
	if err != nil {
		t.Fatalf("GetTask() error: %v", err)
	}
	if got.StartTime == nil || got.StartTime.String() != "14:00" {
		t.Errorf("start = %v, want 14:00", got.StartTime)
	}
	if got.PomodoroEstimation != 2 {
		t.Errorf("estimation = %d, want 2", got.PomodoroEstimation)
	}

	if err := repo.DeleteTask(ctx, "a"); err != nil {
		t.Fatalf("DeleteTask() error: %v", err)
	}

	tasks, _ := repo.ListTasksForDay(ctx, "2026-10-15")
	if len(tasks) != 0 {
		t.Errorf("expected no tasks after delete, got %d", len(tasks))
	}
}

func TestListSkipsStaleIndexEntries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")

	if err := client.SAdd(ctx, "test:day:2026-10-15", "ghost").Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	tasks, err := repo.ListTasksForDay(ctx, "2026-10-15")
	if err != nil {
		t.Fatalf("ListTasksForDay() error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected stale member to be skipped, got %d tasks", len(tasks))
	}
}

func TestGetTaskInvalidData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")

	if err := client.Set(ctx, "test:task:bad", "not json", 0).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	if _, err := repo.GetTask(ctx, "bad"); !errors.Is(err, ErrInvalidTaskData) {
		t.Errorf("expected ErrInvalidTaskData, got %v", err)
	}
}

func TestSettingsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSettingsRepository(client, "test")

	if _, err := repo.GetSettings(ctx); !errors.Is(err, domain.ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}

	in := domain.Settings{PomodoroWorkDuration: 45, PomodoroShortBreak: 15}
	if err := repo.SaveSettings(ctx, &in); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	got, err := repo.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if *got != in {
		t.Errorf("GetSettings() = %+v, want %+v", *got, in)
	}
}

func TestNewKeyspaceDefaults(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "", want: "schedule:task:a"},
		{prefix: "custom:", want: "custom:task:a"},
		{prefix: "custom", want: "custom:task:a"},
	}

	for _, tt := range tests {
		if got := newKeyspace(tt.prefix).task("a"); got != tt.want {
			t.Errorf("newKeyspace(%q).task = %q, want %q", tt.prefix, got, tt.want)
		}
	}

	keys := newKeyspace("")
	if got := keys.project("p1"); got != "schedule:project:p1" {
		t.Errorf("project key = %q", got)
	}
	if got := keys.projectTasks("p1"); got != "schedule:project:p1:tasks" {
		t.Errorf("project tasks key = %q", got)
	}
}

func TestUpdateTaskRetriesOnConcurrentWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")

	if err := repo.SaveTask(ctx, &domain.Task{
		ID:                 "a",
		ScheduledAt:        "2026-10-15",
		StartTime:          clockPtr("09:00"),
		PomodoroEstimation: 2,
	}); err != nil {
		t.Fatalf("SaveTask() error: %v", err)
	}

	attempts := 0
	got, err := repo.UpdateTask(ctx, "a", func(task *domain.Task) {
		attempts++
		if attempts == 1 {
			// a recalculation lands between our read and our write
			moved := domain.MustParseClock("11:00")
			if err := repo.UpdateStartTime(ctx, "a", &moved); err != nil {
				t.Errorf("UpdateStartTime() error: %v", err)
			}
		}
		task.Completed = !task.Completed
	})
	if err != nil {
		t.Fatalf("UpdateTask() error: %v", err)
	}

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if !got.Completed || got.StartTime.String() != "11:00" {
		t.Errorf("UpdateTask() = completed %v start %s, want completed at 11:00", got.Completed, got.StartTime)
	}

	stored, _ := repo.GetTask(ctx, "a")
	if !stored.Completed || stored.StartTime.String() != "11:00" {
		t.Errorf("stored = completed %v start %s, want completed at 11:00", stored.Completed, stored.StartTime)
	}

	if _, err := repo.UpdateTask(ctx, "missing", func(*domain.Task) {}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("UpdateTask(missing) error = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateTaskMovesIndexes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTaskRepository(client, "test")

	if err := repo.SaveTask(ctx, &domain.Task{ID: "a", Text: "buy shoes"}); err != nil {
		t.Fatalf("SaveTask() error: %v", err)
	}

	if _, err := repo.UpdateTask(ctx, "a", func(task *domain.Task) { task.Completed = true }); err != nil {
		t.Fatalf("UpdateTask() error: %v", err)
	}

	isMember, err := client.SIsMember(ctx, "test:inbox", "a").Result()
	if err != nil {
		t.Fatalf("SIsMember() error: %v", err)
	}
	if isMember {
		t.Error("expected completed task removed from inbox set")
	}

	if _, err := repo.UpdateTask(ctx, "a", func(task *domain.Task) { task.ProjectID = "p1" }); err != nil {
		t.Fatalf("UpdateTask() error: %v", err)
	}

	tasks, err := repo.ListTasksForProject(ctx, "p1")
	if err != nil {
		t.Fatalf("ListTasksForProject() error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "a" {
		t.Errorf("ListTasksForProject() = %+v, want [a]", tasks)
	}
}

func TestProjectRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewProjectRepository(client, "test")

	if _, err := repo.GetProject(ctx, "p1"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	in := &domain.Project{
		ID:     "p1",
		Title:  "marathon",
		Status: domain.ProjectActive,
		Milestones: []domain.Milestone{
			{ID: "m1", Title: "shoes", Order: 1},
			{ID: "m2", Title: "first run", Order: 2},
		},
		CreatedAt: base.Add(time.Hour),
	}
	if err := repo.SaveProject(ctx, in); err != nil {
		t.Fatalf("SaveProject() error: %v", err)
	}
	if err := repo.SaveProject(ctx, &domain.Project{ID: "p0", Title: "older", Status: domain.ProjectArchived, CreatedAt: base}); err != nil {
		t.Fatalf("SaveProject() error: %v", err)
	}

	got, err := repo.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject() error: %v", err)
	}
	if got.Title != "marathon" || len(got.Milestones) != 2 || got.Milestones[1].Order != 2 {
		t.Errorf("GetProject() = %+v", got)
	}

	exists, _ := client.Exists(ctx, "test:project:p1").Result()
	if exists != 1 {
		t.Error("expected record under test:project:p1")
	}

	list, err := repo.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects() error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p0" || list[1].ID != "p1" {
		t.Errorf("ListProjects() = %+v, want [p0 p1]", list)
	}

	if err := repo.SaveProject(ctx, &domain.Project{}); !errors.Is(err, domain.ErrInvalidProject) {
		t.Errorf("SaveProject(no id) error = %v, want ErrInvalidProject", err)
	}
}
