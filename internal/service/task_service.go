package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/domain/schedule"
	"github.com/taskloop/taskloop-api/internal/platform/logger"
	"github.com/taskloop/taskloop-api/internal/store"
)

// GenerationResult reports the outcome of a recurring-instance planning
// pass: the tasks that were created and the series whose generation failed.
// Failures never abort the pass; they are logged and surfaced here.
type GenerationResult struct {
	Created  []*domain.Task
	Failures []schedule.PlanFailure
}

// TaskService orchestrates task mutations and recurring-instance generation.
type TaskService interface {
	// CompleteTask marks a task completed at now and, in the same
	// transaction, plans and persists any recurring instances that become
	// due for the user's task set. Returns the completed task and the
	// generation outcome.
	CompleteTask(ctx context.Context, userID, taskID uuid.UUID, now time.Time) (*domain.Task, *GenerationResult, error)

	// GenerateRecurringInstances runs a full planning pass over the user's
	// task set inside one transaction. Idempotent: re-running after the
	// results are persisted creates nothing new.
	GenerateRecurringInstances(ctx context.Context, userID uuid.UUID, now time.Time) (*GenerationResult, error)

	// MoveToToday reassigns each listed task's due date to now, leaving
	// status unchanged. All-or-nothing.
	MoveToToday(ctx context.Context, userID uuid.UUID, taskIDs []uuid.UUID, now time.Time) error

	// MoveToPending sets each listed task's status to pending and clears
	// its due date, removing it from the overdue set. All-or-nothing.
	MoveToPending(ctx context.Context, userID uuid.UUID, taskIDs []uuid.UUID) error
}

// Verify interface compliance at compile time
var _ TaskService = (*taskServiceImpl)(nil)

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	tx        store.Transactioner
	taskStore store.TaskStore
	scheduler schedule.Service
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService implementation.
func NewTaskService(
	tx store.Transactioner,
	taskStore store.TaskStore,
	scheduler schedule.Service,
	logger *slog.Logger,
) TaskService {
	if tx == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tx cannot be nil for TaskService")
	}
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil for TaskService")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil for TaskService")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tx:        tx,
		taskStore: taskStore,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// CompleteTask implements TaskService.CompleteTask.
func (s *taskServiceImpl) CompleteTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	now time.Time,
) (*domain.Task, *GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var completed *domain.Task
	var result *GenerationResult

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, userID, taskID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to load task: %w", err)
		}

		task.Complete(now)
		if err := txStore.Update(ctx, task); err != nil {
			return fmt.Errorf("failed to persist completion: %w", err)
		}

		completed = task
		result, err = s.generateWithin(ctx, txStore, userID, now)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	log.Debug("task completed",
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID.String()),
		slog.Int("instances_created", len(result.Created)))
	return completed, result, nil
}

// GenerateRecurringInstances implements TaskService.GenerateRecurringInstances.
func (s *taskServiceImpl) GenerateRecurringInstances(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*GenerationResult, error) {
	var result *GenerationResult

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		result, err = s.generateWithin(ctx, s.taskStore.WithTx(tx), userID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// generateWithin runs the read-plan-persist cycle on the given (already
// transactional) store. Holding the whole cycle in one transaction is what
// upholds the planner's duplicate-instance guard under concurrent requests.
func (s *taskServiceImpl) generateWithin(
	ctx context.Context,
	txStore store.TaskStore,
	userID uuid.UUID,
	now time.Time,
) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := txStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for planning: %w", err)
	}

	plan := s.scheduler.PlanPendingInstances(tasks, now)

	// Failed series are logged and skipped; one bad task never blocks
	// generation for the rest of the batch.
	for _, failure := range plan.Failures {
		log.Warn("skipping recurring instance generation",
			slog.String("user_id", userID.String()),
			slog.String("task_id", failure.TaskID.String()),
			slog.String("error", failure.Err.Error()))
	}

	created := make([]*domain.Task, 0, len(plan.Instances))
	for _, spec := range plan.Instances {
		created = append(created, spec.Materialize(now))
	}

	if len(created) > 0 {
		if err := txStore.CreateMultiple(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to persist recurring instances: %w", err)
		}
		log.Info("recurring instances created",
			slog.String("user_id", userID.String()),
			slog.Int("count", len(created)))
	}

	return &GenerationResult{Created: created, Failures: plan.Failures}, nil
}

// MoveToToday implements TaskService.MoveToToday.
func (s *taskServiceImpl) MoveToToday(
	ctx context.Context,
	userID uuid.UUID,
	taskIDs []uuid.UUID,
	now time.Time,
) error {
	if len(taskIDs) == 0 {
		return ErrEmptyTaskList
	}

	due := sql.NullTime{Time: now.UTC(), Valid: true}
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).UpdateDueDates(ctx, userID, taskIDs, due)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to move tasks to today: %w", err)
	}

	return nil
}

// MoveToPending implements TaskService.MoveToPending.
func (s *taskServiceImpl) MoveToPending(
	ctx context.Context,
	userID uuid.UUID,
	taskIDs []uuid.UUID,
) error {
	if len(taskIDs) == 0 {
		return ErrEmptyTaskList
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)
		if err := txStore.UpdateStatuses(ctx, userID, taskIDs, domain.TaskStatusPending); err != nil {
			return err
		}
		// Clearing the due date is what actually removes the task from
		// the overdue predicate; pending status alone would not.
		return txStore.UpdateDueDates(ctx, userID, taskIDs, sql.NullTime{})
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to move tasks to pending: %w", err)
	}

	return nil
}
