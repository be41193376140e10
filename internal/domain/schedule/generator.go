package schedule

import (
	"errors"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// Instance generation errors. These mark precondition violations: the batch
// planner reports them per task and carries on with the rest of the batch.
var (
	// ErrNoRecurrence is returned when instance generation is invoked on a
	// task without a recurrence config.
	ErrNoRecurrence = errors.New("task has no recurrence config")

	// ErrNoDueDate is returned when instance generation is invoked on a
	// task without a due date.
	ErrNoDueDate = errors.New("task has no due date")
)

// NewInstance builds the spec for the next occurrence of a recurring task.
//
// The returned spec copies title, notes, and the recurrence config verbatim,
// deep-copies subtasks and urls with freshly generated ids (subtask
// completion is reset: progress never carries across instances), forces
// status to current, and advances the due date by one occurrence.
//
// ParentRecurringTaskID is the original's own parent id when set, else the
// original's id, so any instance — however many generations deep — points at
// the task that first defined the recurrence.
//
// The spec carries no id or timestamps; those are assigned on persistence.
func NewInstance(original *domain.Task) (*domain.InstanceSpec, error) {
	if original.Recurrence == nil {
		return nil, ErrNoRecurrence
	}
	if original.DueDate == nil {
		return nil, ErrNoDueDate
	}
	// Stored data can predate config validation; a malformed config must
	// surface as a per-task failure, not as silently wrong date math.
	if err := original.Recurrence.Validate(); err != nil {
		return nil, err
	}

	next := NextDueDate(*original.DueDate, *original.Recurrence)

	subtasks := make([]domain.Subtask, len(original.Subtasks))
	for i, st := range original.Subtasks {
		subtasks[i] = domain.Subtask{
			ID:        uuid.New(),
			Title:     st.Title,
			Completed: false,
		}
	}

	urls := make([]domain.TaskURL, len(original.URLs))
	for i, u := range original.URLs {
		urls[i] = domain.TaskURL{
			ID:  uuid.New(),
			URL: u.URL,
		}
	}

	return &domain.InstanceSpec{
		UserID:                original.UserID,
		Title:                 original.Title,
		Notes:                 original.Notes,
		Status:                domain.TaskStatusCurrent,
		DueDate:               &next,
		Recurrence:            original.Recurrence.Clone(),
		ParentRecurringTaskID: original.SeriesRootID(),
		Subtasks:              subtasks,
		URLs:                  urls,
	}, nil
}
