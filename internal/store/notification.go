package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// NotificationStore defines the interface for notification persistence,
// including the durable dismissal record that keeps a dismissed alert from
// resurfacing for the same task set.
type NotificationStore interface {
	// Create saves a new notification to the store.
	Create(ctx context.Context, notification *domain.Notification) error

	// GetByID retrieves a notification by its ID, scoped to the owning user.
	// Returns ErrNotificationNotFound if it does not exist.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error)

	// ListByUser retrieves a user's active notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// MarkRead flags a notification as seen.
	// Returns ErrNotificationNotFound if it does not exist.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error

	// Delete removes a notification from the active set.
	// Returns ErrNotificationNotFound if it does not exist.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// RecordDismissal stores the content fingerprint of a dismissed
	// notification so an identical alert is suppressed until the underlying
	// task set changes.
	RecordDismissal(ctx context.Context, userID uuid.UUID, fingerprint string) error

	// IsDismissed reports whether the given content fingerprint has been
	// dismissed by the user.
	IsDismissed(ctx context.Context, userID uuid.UUID, fingerprint string) (bool, error)

	// WithTx returns a NotificationStore bound to the provided transaction.
	WithTx(tx *sql.Tx) NotificationStore
}
