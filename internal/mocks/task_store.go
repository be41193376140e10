package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/store"
)

// Verify interface compliance at compile time
var _ store.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory store.TaskStore for tests.
type TaskStore struct {
	mu    sync.Mutex
	tasks []*domain.Task

	// Error overrides for failure-path tests. When set, the matching
	// method returns the error without touching state.
	CreateErr error
	ListErr   error
	UpdateErr error
}

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// WithTx implements store.TaskStore; the in-memory store has no
// transactions, so it returns itself.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return s
}

// Seed adds tasks directly, bypassing validation.
func (s *TaskStore) Seed(tasks ...*domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, tasks...)
}

// All returns the current task list in insertion order.
func (s *TaskStore) All() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return nil
}

// CreateMultiple implements store.TaskStore.
func (s *TaskStore) CreateMultiple(ctx context.Context, tasks []*domain.Task) error {
	for _, task := range tasks {
		if err := s.Create(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// ListByUser implements store.TaskStore.
func (s *TaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == task.ID && t.UserID == task.UserID {
			s.tasks[i] = task
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// UpdateDueDates implements store.TaskStore.
func (s *TaskStore) UpdateDueDates(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
	dueDate sql.NullTime,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		t := s.find(userID, id)
		if t == nil {
			return store.ErrTaskNotFound
		}
		if dueDate.Valid {
			d := dueDate.Time
			t.DueDate = &d
		} else {
			t.DueDate = nil
		}
	}
	return nil
}

// UpdateStatuses implements store.TaskStore.
func (s *TaskStore) UpdateStatuses(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
	status domain.TaskStatus,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		t := s.find(userID, id)
		if t == nil {
			return store.ErrTaskNotFound
		}
		t.Status = status
	}
	return nil
}

// find locates a task by owner and id; callers must hold the lock.
func (s *TaskStore) find(userID, id uuid.UUID) *domain.Task {
	for _, t := range s.tasks {
		if t.ID == id && t.UserID == userID {
			return t
		}
	}
	return nil
}
