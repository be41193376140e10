package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/store"
)

// Verify interface compliance at compile time
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// PostgresNotificationStore implements store.NotificationStore using
// PostgreSQL. Active notifications live in the notifications table; the
// dismissed_notifications table holds only content fingerprints, the
// durable record that keeps a dismissed alert from resurfacing.
type PostgresNotificationStore struct {
	db store.DBTX
}

// NewPostgresNotificationStore creates a new PostgresNotificationStore.
func NewPostgresNotificationStore(db store.DBTX) *PostgresNotificationStore {
	return &PostgresNotificationStore{
		db: db,
	}
}

// WithTx returns a NotificationStore bound to the given transaction.
func (s *PostgresNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return &PostgresNotificationStore{db: tx}
}

// Create saves a new notification to the database.
func (s *PostgresNotificationStore) Create(
	ctx context.Context,
	notification *domain.Notification,
) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, description, read, task_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	taskIDs, err := json.Marshal(notification.TaskIDs)
	if err != nil {
		return fmt.Errorf("failed to encode task ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Type,
		notification.Title,
		notification.Description,
		notification.Read,
		taskIDs,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", MapError(err))
	}

	return nil
}

// GetByID retrieves a notification by ID, scoped to the owning user.
func (s *PostgresNotificationStore) GetByID(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, description, read, task_ids, created_at
		FROM notifications
		WHERE id = $1 AND user_id = $2
	`

	notification, err := scanNotification(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", MapError(err))
	}

	return notification, nil
}

// ListByUser retrieves a user's active notifications, newest first.
func (s *PostgresNotificationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, description, read, task_ids, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification rows: %w", MapError(err))
	}

	return notifications, nil
}

// MarkRead flags a notification as seen.
func (s *PostgresNotificationStore) MarkRead(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", MapError(err))
	}

	return requireRowsAffected(result, store.ErrNotificationNotFound)
}

// Delete removes a notification from the active set.
func (s *PostgresNotificationStore) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	query := `
		DELETE FROM notifications
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", MapError(err))
	}

	return requireRowsAffected(result, store.ErrNotificationNotFound)
}

// RecordDismissal stores the content fingerprint of a dismissed
// notification. Recording the same fingerprint twice is a no-op.
func (s *PostgresNotificationStore) RecordDismissal(
	ctx context.Context,
	userID uuid.UUID,
	fingerprint string,
) error {
	query := `
		INSERT INTO dismissed_notifications (user_id, fingerprint, dismissed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, fingerprint) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, userID, fingerprint); err != nil {
		return fmt.Errorf("failed to record dismissal: %w", MapError(err))
	}

	return nil
}

// IsDismissed reports whether the given content fingerprint has been
// dismissed by the user.
func (s *PostgresNotificationStore) IsDismissed(
	ctx context.Context,
	userID uuid.UUID,
	fingerprint string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM dismissed_notifications
			WHERE user_id = $1 AND fingerprint = $2
		)
	`

	var dismissed bool
	err := s.db.QueryRowContext(ctx, query, userID, fingerprint).Scan(&dismissed)
	if err != nil {
		return false, fmt.Errorf("failed to check dismissal: %w", MapError(err))
	}

	return dismissed, nil
}

// scanNotification reads one notification row, decoding the task-id list.
func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n           domain.Notification
		taskIDsJSON []byte
	)

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Description,
		&n.Read,
		&taskIDsJSON,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(taskIDsJSON) > 0 {
		if err := json.Unmarshal(taskIDsJSON, &n.TaskIDs); err != nil {
			return nil, fmt.Errorf("failed to decode task ids: %w", err)
		}
	}

	return &n, nil
}
