// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/api/shared"
	"github.com/taskloop/taskloop-api/internal/platform/logger"
	"github.com/taskloop/taskloop-api/internal/service"
)

// BulkTaskRequest is the request body for the bulk remediation endpoints.
type BulkTaskRequest struct {
	TaskIDs []string `json:"task_ids" validate:"required,min=1,dive,uuid"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CompleteTask handles POST /tasks/{id}/complete requests.
// It marks the task completed and returns any recurring instances generated
// as a consequence.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromRequest(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("invalid task ID format", slog.String("task_id", chi.URLParam(r, "id")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, result, err := h.taskService.CompleteTask(r.Context(), userID, taskID, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task completed",
		slog.String("task_id", taskID.String()),
		slog.Int("instances_created", len(result.Created)))
	shared.RespondWithJSON(w, r, http.StatusOK, CompleteTaskResponse{
		Task:       taskToResponse(task),
		Generation: generationToResponse(result),
	})
}

// GenerateInstances handles POST /tasks/generate requests.
// It runs an on-demand planning pass over the user's task set. The pass is
// idempotent: repeating it without changing the task set creates nothing.
func (h *TaskHandler) GenerateInstances(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromRequest(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	result, err := h.taskService.GenerateRecurringInstances(r.Context(), userID, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, generationToResponse(result))
}

// MoveToToday handles POST /tasks/bulk/move-to-today requests.
func (h *TaskHandler) MoveToToday(w http.ResponseWriter, r *http.Request) {
	h.bulkRemediate(w, r, func(userID uuid.UUID, ids []uuid.UUID) error {
		return h.taskService.MoveToToday(r.Context(), userID, ids, time.Now().UTC())
	})
}

// MoveToPending handles POST /tasks/bulk/move-to-pending requests.
func (h *TaskHandler) MoveToPending(w http.ResponseWriter, r *http.Request) {
	h.bulkRemediate(w, r, func(userID uuid.UUID, ids []uuid.UUID) error {
		return h.taskService.MoveToPending(r.Context(), userID, ids)
	})
}

// bulkRemediate is the shared request plumbing for the two bulk endpoints:
// decode, validate, apply, 204 on success.
func (h *TaskHandler) bulkRemediate(
	w http.ResponseWriter,
	r *http.Request,
	apply func(userID uuid.UUID, ids []uuid.UUID) error,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromRequest(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req BulkTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "task_ids must be a non-empty list of UUIDs")
		return
	}

	ids := make([]uuid.UUID, len(req.TaskIDs))
	for i, raw := range req.TaskIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
			return
		}
		ids[i] = id
	}

	if err := apply(userID, ids); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userIDFromRequest extracts the authenticated user ID set by the auth
// middleware.
func userIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
