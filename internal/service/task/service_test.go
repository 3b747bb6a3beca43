package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/infra/memstore"
)

func newTestService(repo domain.TaskRepository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		wantErr bool
		check   func(t *testing.T, task *domain.Task)
	}{
		{
			name:  "inbox task",
			input: CreateInput{Text: "  read book  "},
			check: func(t *testing.T, task *domain.Task) {
				if task.Text != "read book" {
					t.Errorf("text = %q, want trimmed", task.Text)
				}
				if !task.IsInbox() {
					t.Error("expected inbox task")
				}
			},
		},
		{
			name: "fixed appointment",
			input: CreateInput{
				Text:        "dentist",
				ScheduledAt: "2026-10-15",
				StartTime:   "13:00",
				EndTime:     "14:00",
				IsFixed:     true,
			},
			check: func(t *testing.T, task *domain.Task) {
				if !task.IsAppointment() {
					t.Error("expected appointment")
				}
				if task.StartTime.String() != "13:00" || task.EndTime.String() != "14:00" {
					t.Errorf("times = %s-%s", task.StartTime, task.EndTime)
				}
			},
		},
		{name: "empty text", input: CreateInput{Text: "   "}, wantErr: true},
		{name: "bad day", input: CreateInput{Text: "x", ScheduledAt: "15/10/2026"}, wantErr: true},
		{name: "bad start", input: CreateInput{Text: "x", StartTime: "9:00"}, wantErr: true},
		{name: "end without start", input: CreateInput{Text: "x", EndTime: "10:00"}, wantErr: true},
		{name: "negative estimation", input: CreateInput{Text: "x", PomodoroEstimation: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := domain.NewMockTaskRepository(ctrl)
			if tt.wantErr {
				repo.EXPECT().SaveTask(gomock.Any(), gomock.Any()).Times(0)
			} else {
				repo.EXPECT().SaveTask(gomock.Any(), gomock.Any()).Return(nil)
			}

			task, err := newTestService(repo).Create(context.Background(), tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidTask) {
					t.Fatalf("Create() error = %v, want ErrInvalidTask", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if !strings.HasPrefix(task.ID, "task_") {
				t.Errorf("id = %q, want task_ prefix", task.ID)
			}
			if !task.CreatedAt.Equal(time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)) {
				t.Errorf("created_at = %v", task.CreatedAt)
			}
			tt.check(t, task)
		})
	}
}

func TestCreate_ReportsAllProblems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := newTestService(domain.NewMockTaskRepository(ctrl)).Create(context.Background(), CreateInput{
		ScheduledAt:        "nope",
		PomodoroEstimation: -2,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"text is required", "scheduled_at", "pomodoro_estimation"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func applyMutation(stored domain.Task) func(context.Context, string, func(*domain.Task)) (*domain.Task, error) {
	return func(_ context.Context, _ string, mutate func(*domain.Task)) (*domain.Task, error) {
		task := stored.Clone()
		mutate(&task)
		return &task, nil
	}
}

func TestToggleCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := domain.NewMockTaskRepository(ctrl)
	repo.EXPECT().GetTask(gomock.Any(), gomock.Any()).Times(0)
	repo.EXPECT().SaveTask(gomock.Any(), gomock.Any()).Times(0)
	repo.EXPECT().UpdateTask(gomock.Any(), "a", gomock.Any()).
		DoAndReturn(applyMutation(domain.Task{ID: "a", Text: "x"}))

	got, err := newTestService(repo).ToggleCompleted(context.Background(), "a")
	if err != nil {
		t.Fatalf("ToggleCompleted() unexpected error: %v", err)
	}
	if !got.Completed {
		t.Error("expected completed")
	}
}

func TestRecordPomodoro(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := domain.NewMockTaskRepository(ctrl)
	repo.EXPECT().UpdateTask(gomock.Any(), "a", gomock.Any()).
		DoAndReturn(applyMutation(domain.Task{ID: "a", PomodoroCompleted: 1}))
	repo.EXPECT().UpdateTask(gomock.Any(), "missing", gomock.Any()).Return(nil, domain.ErrTaskNotFound)

	svc := newTestService(repo)

	got, err := svc.RecordPomodoro(context.Background(), "a")
	if err != nil {
		t.Fatalf("RecordPomodoro() unexpected error: %v", err)
	}
	if got.PomodoroCompleted != 2 {
		t.Errorf("pomodoro_completed = %d, want 2", got.PomodoroCompleted)
	}

	if _, err := svc.RecordPomodoro(context.Background(), "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("RecordPomodoro(missing) error = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdate_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeErr := errors.New("connection refused")
	repo := domain.NewMockTaskRepository(ctrl)
	repo.EXPECT().UpdateTask(gomock.Any(), "a", gomock.Any()).Return(nil, storeErr)

	if _, err := newTestService(repo).ToggleCompleted(context.Background(), "a"); !errors.Is(err, storeErr) {
		t.Errorf("ToggleCompleted() error = %v, want wrapped store error", err)
	}
}

// rescheduledStore moves the task to a new start time after every read and right
// before every update, like a recalculation running alongside the request.
type rescheduledStore struct {
	*memstore.Store
	start domain.Clock
}

func (s *rescheduledStore) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.Store.GetTask(ctx, id)
	if err == nil {
		_ = s.Store.UpdateStartTime(ctx, id, &s.start)
	}
	return task, err
}

func (s *rescheduledStore) UpdateTask(ctx context.Context, id string, mutate func(*domain.Task)) (*domain.Task, error) {
	_ = s.Store.UpdateStartTime(ctx, id, &s.start)
	return s.Store.UpdateTask(ctx, id, mutate)
}

func TestToggleAndRecordKeepConcurrentStartTime(t *testing.T) {
	tests := []struct {
		name  string
		apply func(context.Context, *Service) (*domain.Task, error)
		check func(*domain.Task) bool
	}{
		{
			name: "toggle",
			apply: func(ctx context.Context, s *Service) (*domain.Task, error) {
				return s.ToggleCompleted(ctx, "a")
			},
			check: func(task *domain.Task) bool { return task.Completed },
		},
		{
			name: "record pomodoro",
			apply: func(ctx context.Context, s *Service) (*domain.Task, error) {
				return s.RecordPomodoro(ctx, "a")
			},
			check: func(task *domain.Task) bool { return task.PomodoroCompleted == 1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := &rescheduledStore{Store: memstore.New(), start: domain.MustParseClock("11:00")}
			if err := store.Store.SaveTask(ctx, &domain.Task{
				ID:                 "a",
				ScheduledAt:        "2026-10-15",
				StartTime:          domain.ClockPtr(domain.MustParseClock("09:00")),
				PomodoroEstimation: 1,
			}); err != nil {
				t.Fatalf("seed: %v", err)
			}

			got, err := tt.apply(ctx, newTestService(store))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			stored, _ := store.Store.GetTask(ctx, "a")
			if stored.StartTime.String() != "11:00" {
				t.Errorf("stored start = %s, want the concurrently written 11:00", stored.StartTime)
			}
			if !tt.check(stored) || !tt.check(got) {
				t.Errorf("change not applied: stored %+v, returned %+v", stored, got)
			}
		})
	}
}

func TestCreate_MilestoneAndNotes(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newTestService(store)

	task, err := svc.Create(ctx, CreateInput{
		Text:        "buy running shoes",
		ProjectID:   "proj_1",
		MilestoneID: "ms_1",
		Notes:       "  size 44  ",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if task.MilestoneID != "ms_1" || task.Notes != "size 44" {
		t.Errorf("Create() = %+v, want milestone and trimmed notes", task)
	}
	if task.IsInbox() {
		t.Error("project task must not land in the inbox")
	}

	if _, err := svc.Create(ctx, CreateInput{Text: "x", MilestoneID: "ms_1"}); !errors.Is(err, domain.ErrInvalidTask) {
		t.Errorf("Create(milestone without project) error = %v, want ErrInvalidTask", err)
	}
}

func TestListDay_InvalidDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := domain.NewMockTaskRepository(ctrl)
	repo.EXPECT().ListTasksForDay(gomock.Any(), gomock.Any()).Times(0)

	if _, err := newTestService(repo).ListDay(context.Background(), "tomorrow"); !errors.Is(err, domain.ErrInvalidDay) {
		t.Errorf("ListDay() error = %v, want ErrInvalidDay", err)
	}
}
