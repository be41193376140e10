package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestInstanceSpecMaterialize(t *testing.T) {
	t.Parallel() // Enable parallel execution
	parentID := uuid.New()
	due := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	spec := InstanceSpec{
		UserID:                uuid.New(),
		Title:                 "Weekly review",
		Status:                TaskStatusCurrent,
		DueDate:               &due,
		Recurrence:            &RecurrenceConfig{Cadence: CadenceWeekly, Interval: 1},
		ParentRecurringTaskID: parentID,
	}

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	task := spec.Materialize(now)

	if task.ID == uuid.Nil {
		t.Error("Expected materialized task to get a fresh id")
	}

	if !task.IsRecurringInstance {
		t.Error("Expected materialized task to be flagged as a recurring instance")
	}

	if task.ParentRecurringTaskID == nil || *task.ParentRecurringTaskID != parentID {
		t.Errorf("Expected parent id %s, got %v", parentID, task.ParentRecurringTaskID)
	}

	if !task.CreatedAt.Equal(now) || !task.UpdatedAt.Equal(now) {
		t.Errorf("Expected timestamps %v, got created %v updated %v", now, task.CreatedAt, task.UpdatedAt)
	}

	if task.CompletedAt != nil {
		t.Error("Expected materialized task to start incomplete")
	}

	// Two materializations of one spec must not share an id
	other := spec.Materialize(now)
	if other.ID == task.ID {
		t.Error("Expected distinct ids across materializations")
	}
}
