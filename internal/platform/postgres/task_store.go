package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/platform/logger"
	"github.com/taskloop/taskloop-api/internal/store"
)

// Verify interface compliance at compile time
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// PostgresTaskStore implements the store.TaskStore interface using PostgreSQL.
// Recurrence configs, subtasks, and urls are persisted as JSONB columns on
// the task row; they are value objects owned by the task and never shared.
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a new PostgresTaskStore.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{
		db: db,
	}
}

// WithTx returns a TaskStore bound to the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx}
}

const taskColumns = `id, user_id, title, notes, status, due_date, completed_at,
	recurrence, parent_recurring_task_id, is_recurring_instance,
	subtasks, urls, created_at, updated_at`

// Create saves a new task to the database.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	recurrence, subtasks, urls, err := marshalTaskJSON(task)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Notes,
		task.Status,
		task.DueDate,
		task.CompletedAt,
		recurrence,
		task.ParentRecurringTaskID,
		task.IsRecurringInstance,
		subtasks,
		urls,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create task",
			"task_id", task.ID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// CreateMultiple saves multiple tasks to the database. Run it inside a
// transaction so a batch of generated instances lands atomically.
func (s *PostgresTaskStore) CreateMultiple(ctx context.Context, tasks []*domain.Task) error {
	for _, task := range tasks {
		if err := s.Create(ctx, task); err != nil {
			return fmt.Errorf("failed to create task %s: %w", task.ID, err)
		}
	}
	return nil
}

// GetByID retrieves a task by ID, scoped to the owning user.
func (s *PostgresTaskStore) GetByID(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", MapError(err))
	}

	return task, nil
}

// ListByUser retrieves the full task set for a user in creation order.
func (s *PostgresTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", MapError(err))
	}

	return tasks, nil
}

// Update persists changes to an existing task.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, notes = $2, status = $3, due_date = $4,
			completed_at = $5, recurrence = $6, subtasks = $7, urls = $8,
			updated_at = $9
		WHERE id = $10 AND user_id = $11
	`

	recurrence, subtasks, urls, err := marshalTaskJSON(task)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Notes,
		task.Status,
		task.DueDate,
		task.CompletedAt,
		recurrence,
		subtasks,
		urls,
		time.Now().UTC(),
		task.ID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", MapError(err))
	}

	return requireRowsAffected(result, store.ErrTaskNotFound)
}

// UpdateDueDates sets the due date of each listed task.
func (s *PostgresTaskStore) UpdateDueDates(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
	dueDate sql.NullTime,
) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE tasks
		SET due_date = $1, updated_at = $2
		WHERE user_id = $3 AND id = ANY($4)
	`

	result, err := s.db.ExecContext(ctx, query,
		dueDate, time.Now().UTC(), userID, idStrings(ids))
	if err != nil {
		return fmt.Errorf("failed to update due dates: %w", MapError(err))
	}

	return requireAllRowsAffected(result, len(ids))
}

// UpdateStatuses sets the status of each listed task.
func (s *PostgresTaskStore) UpdateStatuses(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
	status domain.TaskStatus,
) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE tasks
		SET status = $1, updated_at = $2
		WHERE user_id = $3 AND id = ANY($4)
	`

	result, err := s.db.ExecContext(ctx, query,
		status, time.Now().UTC(), userID, idStrings(ids))
	if err != nil {
		return fmt.Errorf("failed to update statuses: %w", MapError(err))
	}

	return requireAllRowsAffected(result, len(ids))
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, decoding the JSONB value-object columns.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task           domain.Task
		dueDate        sql.NullTime
		completedAt    sql.NullTime
		recurrenceJSON []byte
		parentID       uuid.NullUUID
		subtasksJSON   []byte
		urlsJSON       []byte
	)

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Notes,
		&task.Status,
		&dueDate,
		&completedAt,
		&recurrenceJSON,
		&parentID,
		&task.IsRecurringInstance,
		&subtasksJSON,
		&urlsJSON,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d := dueDate.Time.UTC()
		task.DueDate = &d
	}
	if completedAt.Valid {
		c := completedAt.Time.UTC()
		task.CompletedAt = &c
	}
	if parentID.Valid {
		p := parentID.UUID
		task.ParentRecurringTaskID = &p
	}

	if len(recurrenceJSON) > 0 {
		var cfg domain.RecurrenceConfig
		if err := json.Unmarshal(recurrenceJSON, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode recurrence config: %w", err)
		}
		task.Recurrence = &cfg
	}
	if len(subtasksJSON) > 0 {
		if err := json.Unmarshal(subtasksJSON, &task.Subtasks); err != nil {
			return nil, fmt.Errorf("failed to decode subtasks: %w", err)
		}
	}
	if len(urlsJSON) > 0 {
		if err := json.Unmarshal(urlsJSON, &task.URLs); err != nil {
			return nil, fmt.Errorf("failed to decode urls: %w", err)
		}
	}

	return &task, nil
}

// marshalTaskJSON encodes the task's JSONB value-object columns. A nil
// recurrence becomes a NULL column, not the JSON string "null".
func marshalTaskJSON(task *domain.Task) (recurrence, subtasks, urls []byte, err error) {
	if task.Recurrence != nil {
		recurrence, err = json.Marshal(task.Recurrence)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to encode recurrence config: %w", err)
		}
	}

	subtasks, err = json.Marshal(task.Subtasks)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode subtasks: %w", err)
	}

	urls, err = json.Marshal(task.URLs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode urls: %w", err)
	}

	return recurrence, subtasks, urls, nil
}

// uniqueIDs drops duplicate ids, preserving first-occurrence order. The
// bulk updates count affected rows against the requested id count, and a
// repeated id must not make a valid batch look short.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// idStrings converts UUIDs to their string form for ANY($n) parameters.
func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// requireRowsAffected returns notFound when the statement matched no rows.
func requireRowsAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// requireAllRowsAffected enforces the all-or-nothing contract of the bulk
// updates: inside a transaction, touching fewer rows than requested rolls
// the whole batch back.
func requireAllRowsAffected(result sql.Result, want int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if int(n) != want {
		return fmt.Errorf("%w: expected %d tasks, matched %d",
			store.ErrTaskNotFound, want, n)
	}
	return nil
}
