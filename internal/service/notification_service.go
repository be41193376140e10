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

// NotificationService maintains the derived overdue-notification view:
// refreshing it from task state, marking it read, and dismissing it.
type NotificationService interface {
	// RefreshOverdueNotification recomputes the overdue alert for a user
	// at the given time. Stale overdue alerts that no longer describe the
	// current overdue set are removed, so at most one aggregate alert is
	// ever active. It returns the active notification, which may be a
	// pre-existing one with the same content, or nil when nothing is
	// overdue or the equivalent alert was dismissed.
	RefreshOverdueNotification(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.Notification, error)

	// ListNotifications returns the user's active notifications, newest first.
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)

	// MarkRead flags a notification as seen by the user.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// DismissNotification removes a notification from the active set and
	// records its content fingerprint so the identical alert does not
	// immediately resurface. The underlying tasks are untouched: if their
	// due dates stay in the past and the overdue set changes, a new alert
	// with a different fingerprint will appear.
	DismissNotification(ctx context.Context, userID, notificationID uuid.UUID) error
}

// Verify interface compliance at compile time
var _ NotificationService = (*notificationServiceImpl)(nil)

// notificationServiceImpl implements the NotificationService interface.
type notificationServiceImpl struct {
	tx                store.Transactioner
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	scheduler         schedule.Service
	logger            *slog.Logger
}

// NewNotificationService creates a new NotificationService implementation.
func NewNotificationService(
	tx store.Transactioner,
	taskStore store.TaskStore,
	notificationStore store.NotificationStore,
	scheduler schedule.Service,
	logger *slog.Logger,
) NotificationService {
	if tx == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tx cannot be nil for NotificationService")
	}
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil for NotificationService")
	}
	if notificationStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("notificationStore cannot be nil for NotificationService")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil for NotificationService")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &notificationServiceImpl{
		tx:                tx,
		taskStore:         taskStore,
		notificationStore: notificationStore,
		scheduler:         scheduler,
		logger:            logger.With(slog.String("component", "notification_service")),
	}
}

// RefreshOverdueNotification implements NotificationService.RefreshOverdueNotification.
func (s *notificationServiceImpl) RefreshOverdueNotification(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var active *domain.Notification

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)
		txNotifications := s.notificationStore.WithTx(tx)

		tasks, err := txTasks.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		overdue := s.scheduler.DetectOverdue(tasks, now)
		candidate, err := s.scheduler.BuildOverdueNotification(userID, overdue, now)
		if err != nil {
			return fmt.Errorf("failed to build overdue notification: %w", err)
		}

		var fingerprint string
		if candidate != nil {
			fingerprint = candidate.Fingerprint()
		}

		// The alert is a derived view: at most one overdue notification is
		// active, and it must describe the current overdue set. An existing
		// notification over the same task set stays as-is so its read flag
		// and creation time survive the refresh; anything else is stale and
		// is removed, including the case where nothing is overdue anymore.
		existing, err := txNotifications.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}
		for _, n := range existing {
			if n.Type != domain.NotificationTypeOverdueTasks {
				continue
			}
			if candidate != nil && n.Fingerprint() == fingerprint {
				active = n
				continue
			}
			if err := txNotifications.Delete(ctx, userID, n.ID); err != nil {
				return fmt.Errorf("failed to remove stale notification: %w", err)
			}
			log.Debug("stale overdue notification removed",
				slog.String("user_id", userID.String()),
				slog.String("notification_id", n.ID.String()))
		}

		if candidate == nil || active != nil {
			return nil
		}

		dismissed, err := txNotifications.IsDismissed(ctx, userID, fingerprint)
		if err != nil {
			return fmt.Errorf("failed to check dismissal record: %w", err)
		}
		if dismissed {
			log.Debug("overdue notification suppressed by dismissal record",
				slog.String("user_id", userID.String()))
			return nil
		}

		if err := txNotifications.Create(ctx, candidate); err != nil {
			return fmt.Errorf("failed to persist notification: %w", err)
		}

		log.Info("overdue notification created",
			slog.String("user_id", userID.String()),
			slog.Int("overdue_count", len(overdue)))
		active = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	return active, nil
}

// ListNotifications implements NotificationService.ListNotifications.
func (s *notificationServiceImpl) ListNotifications(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Notification, error) {
	notifications, err := s.notificationStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead implements NotificationService.MarkRead.
func (s *notificationServiceImpl) MarkRead(
	ctx context.Context,
	userID, notificationID uuid.UUID,
) error {
	if err := s.notificationStore.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// DismissNotification implements NotificationService.DismissNotification.
func (s *notificationServiceImpl) DismissNotification(
	ctx context.Context,
	userID, notificationID uuid.UUID,
) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txNotifications := s.notificationStore.WithTx(tx)

		notification, err := txNotifications.GetByID(ctx, userID, notificationID)
		if err != nil {
			return err
		}

		if err := txNotifications.Delete(ctx, userID, notificationID); err != nil {
			return err
		}

		return txNotifications.RecordDismissal(ctx, userID, notification.Fingerprint())
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to dismiss notification: %w", err)
	}

	return nil
}
