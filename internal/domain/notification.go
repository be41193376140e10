package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification-specific validation errors
var (
	// ErrNotificationIDEmpty is returned when a notification ID is empty or nil.
	ErrNotificationIDEmpty = errors.New("notification ID cannot be empty")

	// ErrNotificationUserIDEmpty is returned when a notification's user ID is empty or nil.
	ErrNotificationUserIDEmpty = errors.New("notification user ID cannot be empty")

	// ErrInvalidNotificationType is returned when a notification type is not valid.
	ErrInvalidNotificationType = errors.New("invalid notification type")

	// ErrNotificationNoTasks is returned when an overdue notification carries no task references.
	ErrNotificationNoTasks = errors.New("notification must reference at least one task")
)

// NotificationType identifies the kind of alert a notification represents.
type NotificationType string

// Possible notification types
const (
	// NotificationTypeOverdueTasks is the aggregate alert for tasks that
	// have silently slipped past their due date.
	NotificationTypeOverdueTasks NotificationType = "overdue_tasks"
)

// Notification is a derived, regenerable view over the task set: an alert
// surfaced to the user with references to the tasks that triggered it.
// Notifications are recomputed from task state; the durable part is only
// the dismissal fingerprint the store tracks so a dismissed alert does not
// immediately resurface for the same tasks.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Read        bool             `json:"read"`
	TaskIDs     []uuid.UUID      `json:"task_ids"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewNotification creates a new Notification for the given user, type, and
// task references, stamped with the caller-supplied creation time.
// Returns an error if validation fails.
func NewNotification(
	userID uuid.UUID,
	notifType NotificationType,
	title, description string,
	taskIDs []uuid.UUID,
	now time.Time,
) (*Notification, error) {
	n := &Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        notifType,
		Title:       title,
		Description: description,
		TaskIDs:     taskIDs,
		CreatedAt:   now.UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification has valid data.
// Returns an error if any field fails validation.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNotificationIDEmpty
	}

	if n.UserID == uuid.Nil {
		return ErrNotificationUserIDEmpty
	}

	if !isValidNotificationType(n.Type) {
		return ErrInvalidNotificationType
	}

	if len(n.TaskIDs) == 0 {
		return ErrNotificationNoTasks
	}

	return nil
}

// Fingerprint returns a stable identifier for the notification's content:
// the sorted set of referenced task ids joined with commas. Two
// notifications over the same task set have equal fingerprints regardless
// of task order, which is what the dismissal record is keyed by.
func (n *Notification) Fingerprint() string {
	ids := make([]string, len(n.TaskIDs))
	for i, id := range n.TaskIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// MarkRead flags the notification as seen by the user.
func (n *Notification) MarkRead() {
	n.Read = true
}

// isValidNotificationType checks if the given type is a valid NotificationType.
func isValidNotificationType(t NotificationType) bool {
	return t == NotificationTypeOverdueTasks
}
