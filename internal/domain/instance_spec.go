package domain

import (
	"time"

	"github.com/google/uuid"
)

// InstanceSpec is the data for a not-yet-persisted recurring task instance.
// It is a Task value without ID, CreatedAt, or UpdatedAt; the persistence
// layer assigns those when the instance is stored. CompletedAt is never set
// on a spec: a fresh instance starts out incomplete.
type InstanceSpec struct {
	UserID                uuid.UUID
	Title                 string
	Notes                 string
	Status                TaskStatus
	DueDate               *time.Time
	Recurrence            *RecurrenceConfig
	ParentRecurringTaskID uuid.UUID
	Subtasks              []Subtask
	URLs                  []TaskURL
}

// Materialize turns the spec into a persistable Task, assigning a fresh id
// and creation timestamps.
func (s *InstanceSpec) Materialize(now time.Time) *Task {
	ts := now.UTC()
	parentID := s.ParentRecurringTaskID
	return &Task{
		ID:                    uuid.New(),
		UserID:                s.UserID,
		Title:                 s.Title,
		Notes:                 s.Notes,
		Status:                s.Status,
		DueDate:               s.DueDate,
		Recurrence:            s.Recurrence,
		ParentRecurringTaskID: &parentID,
		IsRecurringInstance:   true,
		Subtasks:              s.Subtasks,
		URLs:                  s.URLs,
		CreatedAt:             ts,
		UpdatedAt:             ts,
	}
}
