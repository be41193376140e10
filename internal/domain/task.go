package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrInvalidTaskStatus is returned when a task status is not valid.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusCurrent   TaskStatus = "current"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusPending   TaskStatus = "pending"
)

// Subtask is a child item owned exclusively by its parent task. Subtasks are
// never shared across task instances; generating a new recurring instance
// produces fresh copies with new IDs and completion reset.
type Subtask struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
}

// TaskURL is a link attached to a task. Like subtasks, URLs are copied with
// fresh IDs when a new recurring instance is generated.
type TaskURL struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// Task is the central entity of the system. A task may carry a recurrence
// config, making it the root of a recurring series; instances generated from
// it point back to the root via ParentRecurringTaskID.
type Task struct {
	ID                    uuid.UUID         `json:"id"`
	UserID                uuid.UUID         `json:"user_id"`
	Title                 string            `json:"title"`
	Notes                 string            `json:"notes,omitempty"`
	Status                TaskStatus        `json:"status"`
	DueDate               *time.Time        `json:"due_date,omitempty"`
	CompletedAt           *time.Time        `json:"completed_at,omitempty"`
	Recurrence            *RecurrenceConfig `json:"recurrence,omitempty"`
	ParentRecurringTaskID *uuid.UUID        `json:"parent_recurring_task_id,omitempty"`
	IsRecurringInstance   bool              `json:"is_recurring_instance,omitempty"`
	Subtasks              []Subtask         `json:"subtasks,omitempty"`
	URLs                  []TaskURL         `json:"urls,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// NewTask creates a new Task with the given user ID and title.
// It generates a new UUID for the task ID, sets status to current, and
// stamps the creation/update times. Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Status:    TaskStatusCurrent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Complete marks the task as completed at the given time and updates the
// UpdatedAt timestamp. Completing an already-completed task is a no-op.
func (t *Task) Complete(now time.Time) {
	if t.Status == TaskStatusCompleted {
		return
	}

	completedAt := now.UTC()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &completedAt
	t.UpdatedAt = completedAt
}

// IsOverdue reports whether the task is past due at the given time.
// A task due exactly at now is not yet overdue, and completed tasks are
// never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted {
		return false
	}
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

// SeriesRootID returns the id of the task that first defined the recurrence
// for this task's series: the parent back-reference when this task is an
// instance, otherwise the task's own id. All instances of one series share
// one ancestor id through this rule.
func (t *Task) SeriesRootID() uuid.UUID {
	if t.ParentRecurringTaskID != nil {
		return *t.ParentRecurringTaskID
	}
	return t.ID
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusCurrent, TaskStatusCompleted, TaskStatusPending:
		return true
	default:
		return false
	}
}
