package schedule

import (
	"time"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// ShouldGenerateNext decides whether the given task is due to spawn the next
// occurrence of its recurring series.
//
// It returns false when the task has no recurrence (or CadenceNone), is not
// completed, or has no due date. Otherwise it computes the next occurrence
// from the task's due date and returns false only if the config's end date
// is set and the next occurrence falls after it.
//
// now is threaded through for symmetry with the rest of the scheduling core
// but does not gate the decision: generation is triggered by completion, not
// by calendar ticking, so only the task's own due date drives the result.
//
// MaxOccurrences is not enforced here; the planner has no per-series
// occurrence count to consult. See the host's occurrence-counting contract.
func ShouldGenerateNext(task *domain.Task, now time.Time) bool {
	if task == nil || !task.Recurrence.Repeats() {
		return false
	}

	if task.Status != domain.TaskStatusCompleted {
		return false
	}

	if task.DueDate == nil {
		return false
	}

	next := NextDueDate(*task.DueDate, *task.Recurrence)
	if task.Recurrence.EndDate != nil && next.After(*task.Recurrence.EndDate) {
		return false
	}

	return true
}
