package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()

	task, err := NewTask(userID, "Water the plants")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, task.UserID)
	}

	if task.Status != TaskStatusCurrent {
		t.Errorf("Expected status %s, got %s", TaskStatusCurrent, task.Status)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid userID
	_, err = NewTask(uuid.Nil, "Water the plants")
	if err != ErrTaskUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskUserIDEmpty, err)
	}

	// Test empty title
	_, err = NewTask(userID, "")
	if err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validTask := Task{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Title:  "Pay the rent",
		Status: TaskStatusCurrent,
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error for valid task, got %v", err)
	}

	invalidStatus := validTask
	invalidStatus.Status = "archived"
	if err := invalidStatus.Validate(); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	// An attached recurrence config is validated along with the task
	badRecurrence := validTask
	badRecurrence.Recurrence = &RecurrenceConfig{Cadence: CadenceDaily, Interval: 0}
	if err := badRecurrence.Validate(); err != ErrInvalidInterval {
		t.Errorf("Expected error %v, got %v", ErrInvalidInterval, err)
	}
}

func TestTaskComplete(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task := Task{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Title:  "Submit report",
		Status: TaskStatusCurrent,
	}

	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	task.Complete(now)

	if task.Status != TaskStatusCompleted {
		t.Errorf("Expected status %s, got %s", TaskStatusCompleted, task.Status)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("Expected completed at %v, got %v", now, task.CompletedAt)
	}

	// Completing again must not move the timestamp
	later := now.Add(48 * time.Hour)
	task.Complete(later)
	if !task.CompletedAt.Equal(now) {
		t.Errorf("Expected completed at to stay %v, got %v", now, task.CompletedAt)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name    string
		status  TaskStatus
		dueDate *time.Time
		want    bool
	}{
		{"due in the past", TaskStatusCurrent, &past, true},
		{"due in the future", TaskStatusCurrent, &future, false},
		{"due exactly now", TaskStatusCurrent, &now, false},
		{"no due date", TaskStatusCurrent, nil, false},
		{"completed past due", TaskStatusCompleted, &past, false},
		{"pending past due", TaskStatusPending, &past, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task := Task{
				ID:      uuid.New(),
				UserID:  uuid.New(),
				Title:   "t",
				Status:  tc.status,
				DueDate: tc.dueDate,
			}
			if got := task.IsOverdue(now); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTaskSeriesRootID(t *testing.T) {
	t.Parallel() // Enable parallel execution
	root := Task{ID: uuid.New()}
	if root.SeriesRootID() != root.ID {
		t.Errorf("Expected root task to be its own series root, got %s", root.SeriesRootID())
	}

	instance := Task{ID: uuid.New(), ParentRecurringTaskID: &root.ID}
	if instance.SeriesRootID() != root.ID {
		t.Errorf("Expected instance series root %s, got %s", root.ID, instance.SeriesRootID())
	}
}
