package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// PlanFailure reports a task whose instance generation failed during a
// planning pass. Failures are per task and never abort the batch.
type PlanFailure struct {
	TaskID uuid.UUID
	Err    error
}

// PlanResult is the outcome of one planning pass: the instances to create,
// in input order, plus any per-task generation failures.
type PlanResult struct {
	Instances []*domain.InstanceSpec
	Failures  []PlanFailure
}

// PlanPendingInstances scans the task set and returns the specs of every
// recurring instance that is due to be created.
//
// A task contributes a candidate when ShouldGenerateNext says so. The
// candidate is then suppressed if some task in the set already belongs to
// the same series and has an identical due date — the duplicate-instance
// guard, and the planner's sole idempotence mechanism, since there is no
// persisted ledger of what was already generated. Re-planning after the
// results have been persisted therefore yields nothing new for those series.
//
// The function is pure: no side effects, no I/O. Persisting the returned
// specs is the caller's responsibility, and callers must serialize planning
// passes per account so two passes over a stale snapshot cannot both decide
// to generate the same instance.
func PlanPendingInstances(tasks []*domain.Task, now time.Time) *PlanResult {
	result := &PlanResult{}

	type occurrence struct {
		seriesID uuid.UUID
		dueDate  time.Time
	}

	existing := make(map[occurrence]bool)
	for _, t := range tasks {
		if t.ParentRecurringTaskID != nil && t.DueDate != nil {
			existing[occurrence{*t.ParentRecurringTaskID, *t.DueDate}] = true
		}
	}

	for _, t := range tasks {
		if !ShouldGenerateNext(t, now) {
			continue
		}

		spec, err := NewInstance(t)
		if err != nil {
			result.Failures = append(result.Failures, PlanFailure{TaskID: t.ID, Err: err})
			continue
		}

		occ := occurrence{spec.ParentRecurringTaskID, *spec.DueDate}
		if existing[occ] {
			continue
		}
		// Guard within the batch too: two completed occurrences of one
		// series must not both spawn the same next instance.
		existing[occ] = true

		result.Instances = append(result.Instances, spec)
	}

	return result
}
