package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/store"
)

// Verify interface compliance at compile time
var _ store.NotificationStore = (*NotificationStore)(nil)

// NotificationStore is an in-memory store.NotificationStore for tests.
type NotificationStore struct {
	mu            sync.Mutex
	notifications []*domain.Notification
	dismissed     map[string]bool

	CreateErr error
}

// NewNotificationStore creates an empty in-memory notification store.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		dismissed: make(map[string]bool),
	}
}

// WithTx implements store.NotificationStore; returns itself.
func (s *NotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return s
}

// Create implements store.NotificationStore.
func (s *NotificationStore) Create(
	ctx context.Context,
	notification *domain.Notification,
) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, notification)
	return nil
}

// GetByID implements store.NotificationStore.
func (s *NotificationStore) GetByID(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, store.ErrNotificationNotFound
}

// ListByUser implements store.NotificationStore.
func (s *NotificationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkRead implements store.NotificationStore.
func (s *NotificationStore) MarkRead(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return store.ErrNotificationNotFound
}

// Delete implements store.NotificationStore.
func (s *NotificationStore) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id && n.UserID == userID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return store.ErrNotificationNotFound
}

// RecordDismissal implements store.NotificationStore.
func (s *NotificationStore) RecordDismissal(
	ctx context.Context,
	userID uuid.UUID,
	fingerprint string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[userID.String()+"/"+fingerprint] = true
	return nil
}

// IsDismissed implements store.NotificationStore.
func (s *NotificationStore) IsDismissed(
	ctx context.Context,
	userID uuid.UUID,
	fingerprint string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dismissed[userID.String()+"/"+fingerprint], nil
}
