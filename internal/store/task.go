package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors if the task data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// CreateMultiple saves multiple tasks to the store.
	// This method should be run within a transaction (via WithTx and
	// store.RunInTransaction) so a batch of recurring instances is
	// persisted atomically: a partial write would defeat the planner's
	// duplicate-instance guard on the next pass.
	CreateMultiple(ctx context.Context, tasks []*domain.Task) error

	// GetByID retrieves a task by its unique ID, scoped to the owning user.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves the full task set for a user, in creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update persists changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateDueDates sets the due date of each listed task.
	// Returns ErrTaskNotFound if any task does not exist; implementations
	// must apply the batch all-or-nothing when run inside a transaction.
	UpdateDueDates(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, dueDate sql.NullTime) error

	// UpdateStatuses sets the status of each listed task.
	// Same atomicity contract as UpdateDueDates.
	UpdateStatuses(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, status domain.TaskStatus) error

	// WithTx returns a TaskStore that runs its operations on the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through store.RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
