package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// Service defines the interface for scheduling core operations. It exists so
// the orchestration layer can depend on an interface and tests can swap in
// a stub; the default implementation just delegates to the pure functions
// in this package.
type Service interface {
	// PlanPendingInstances returns the recurring instances due to be
	// created for the given task set, with per-task failures collected.
	PlanPendingInstances(tasks []*domain.Task, now time.Time) *PlanResult

	// DetectOverdue returns the tasks past due at the given time.
	DetectOverdue(tasks []*domain.Task, now time.Time) []*domain.Task

	// BuildOverdueNotification builds the aggregate overdue alert for a
	// user, stamped at now, or returns nil when there is nothing overdue.
	BuildOverdueNotification(userID uuid.UUID, overdueTasks []*domain.Task, now time.Time) (*domain.Notification, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct{}

// NewDefaultService creates the standard scheduling service.
func NewDefaultService() Service {
	return &defaultService{}
}

func (s *defaultService) PlanPendingInstances(
	tasks []*domain.Task,
	now time.Time,
) *PlanResult {
	return PlanPendingInstances(tasks, now)
}

func (s *defaultService) DetectOverdue(
	tasks []*domain.Task,
	now time.Time,
) []*domain.Task {
	return DetectOverdue(tasks, now)
}

func (s *defaultService) BuildOverdueNotification(
	userID uuid.UUID,
	overdueTasks []*domain.Task,
	now time.Time,
) (*domain.Notification, error) {
	return BuildOverdueNotification(userID, overdueTasks, now)
}
