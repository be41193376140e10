package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/api/shared"
	"github.com/taskloop/taskloop-api/internal/platform/logger"
	"github.com/taskloop/taskloop-api/internal/service"
)

// NotificationHandler handles notification-related HTTP requests.
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(
	notificationService service.NotificationService,
	logger *slog.Logger,
) *NotificationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NotificationHandler")
	}

	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger.With(slog.String("component", "notification_handler")),
	}
}

// ListNotifications handles GET /notifications requests.
// Notifications are a derived view, so the handler refreshes the overdue
// alert from current task state before returning the active set.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromRequest(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	if _, err := h.notificationService.RefreshOverdueNotification(r.Context(), userID, time.Now().UTC()); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to refresh notifications", err)
		return
	}

	notifications, err := h.notificationService.ListNotifications(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notificationToResponse(n))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// MarkRead handles POST /notifications/{id}/read requests.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.withNotificationID(w, r, func(userID, notificationID uuid.UUID) error {
		return h.notificationService.MarkRead(r.Context(), userID, notificationID)
	})
}

// Dismiss handles DELETE /notifications/{id} requests.
// Dismissal removes the alert and records its fingerprint; the underlying
// tasks are untouched.
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.withNotificationID(w, r, func(userID, notificationID uuid.UUID) error {
		return h.notificationService.DismissNotification(r.Context(), userID, notificationID)
	})
}

// withNotificationID is the shared plumbing for the per-notification
// endpoints: auth, id parsing, apply, 204 on success.
func (h *NotificationHandler) withNotificationID(
	w http.ResponseWriter,
	r *http.Request,
	apply func(userID, notificationID uuid.UUID) error,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromRequest(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	notificationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	if err := apply(userID, notificationID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
