package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskloop/taskloop-api/internal/api"
	"github.com/taskloop/taskloop-api/internal/api/shared"
	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/domain/schedule"
	"github.com/taskloop/taskloop-api/internal/mocks"
	"github.com/taskloop/taskloop-api/internal/service"
)

// testEnv wires handlers over in-memory stores, with a middleware that
// injects the given user id the way the auth middleware would.
type testEnv struct {
	router            chi.Router
	taskStore         *mocks.TaskStore
	notificationStore *mocks.NotificationStore
}

func newTestEnv(t *testing.T, userID uuid.UUID) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	taskStore := mocks.NewTaskStore()
	notificationStore := mocks.NewNotificationStore()
	scheduler := schedule.NewDefaultService()
	tx := &mocks.Transactioner{}

	taskService := service.NewTaskService(tx, taskStore, scheduler, logger)
	notificationService := service.NewNotificationService(
		tx, taskStore, notificationStore, scheduler, logger)

	taskHandler := api.NewTaskHandler(taskService, logger)
	notificationHandler := api.NewNotificationHandler(notificationService, logger)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/tasks/{id}/complete", taskHandler.CompleteTask)
	r.Post("/tasks/generate", taskHandler.GenerateInstances)
	r.Post("/tasks/bulk/move-to-today", taskHandler.MoveToToday)
	r.Post("/tasks/bulk/move-to-pending", taskHandler.MoveToPending)
	r.Get("/notifications", notificationHandler.ListNotifications)
	r.Post("/notifications/{id}/read", notificationHandler.MarkRead)
	r.Delete("/notifications/{id}", notificationHandler.Dismiss)

	return &testEnv{
		router:            r,
		taskStore:         taskStore,
		notificationStore: notificationStore,
	}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func seedWeeklyTask(env *testEnv, userID uuid.UUID, due time.Time) *domain.Task {
	task := &domain.Task{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      "Weekly review",
		Status:     domain.TaskStatusCurrent,
		DueDate:    &due,
		Recurrence: &domain.RecurrenceConfig{Cadence: domain.CadenceWeekly, Interval: 1},
	}
	env.taskStore.Seed(task)
	return task
}

func TestCompleteTaskEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	env := newTestEnv(t, userID)
	task := seedWeeklyTask(env, userID, time.Now().UTC().Add(-time.Hour))

	w := env.do(http.MethodPost, "/tasks/"+task.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.CompleteTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, task.ID.String(), resp.Task.ID)
	assert.Equal(t, string(domain.TaskStatusCompleted), resp.Task.Status)
	require.Len(t, resp.Generation.Created, 1)
	assert.Equal(t, task.ID.String(), resp.Generation.Created[0].ParentRecurringTaskID)
}

func TestCompleteTaskEndpointBadID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, uuid.New())

	w := env.do(http.MethodPost, "/tasks/not-a-uuid/complete", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteTaskEndpointNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, uuid.New())

	w := env.do(http.MethodPost, "/tasks/"+uuid.NewString()+"/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteTaskEndpointUnauthorized(t *testing.T) {
	t.Parallel()

	// uuid.Nil in context reads as "no authenticated user"
	env := newTestEnv(t, uuid.Nil)

	w := env.do(http.MethodPost, "/tasks/"+uuid.NewString()+"/complete", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateInstancesEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	env := newTestEnv(t, userID)
	task := seedWeeklyTask(env, userID, time.Now().UTC().Add(-7*24*time.Hour))
	task.Status = domain.TaskStatusCompleted

	w := env.do(http.MethodPost, "/tasks/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.GenerationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Created, 1)

	// The pass is idempotent: a second call creates nothing
	w = env.do(http.MethodPost, "/tasks/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Created)
}

func TestMoveToTodayEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	env := newTestEnv(t, userID)
	task := seedWeeklyTask(env, userID, time.Now().UTC().Add(-48*time.Hour))

	w := env.do(http.MethodPost, "/tasks/bulk/move-to-today",
		api.BulkTaskRequest{TaskIDs: []string{task.ID.String()}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	moved := env.taskStore.All()[0]
	assert.False(t, moved.IsOverdue(time.Now().UTC()))
}

func TestMoveToPendingEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	env := newTestEnv(t, userID)
	task := seedWeeklyTask(env, userID, time.Now().UTC().Add(-48*time.Hour))

	w := env.do(http.MethodPost, "/tasks/bulk/move-to-pending",
		api.BulkTaskRequest{TaskIDs: []string{task.ID.String()}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	moved := env.taskStore.All()[0]
	assert.Equal(t, domain.TaskStatusPending, moved.Status)
	assert.Nil(t, moved.DueDate)
}

func TestBulkEndpointValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, uuid.New())

	// Empty task list
	w := env.do(http.MethodPost, "/tasks/bulk/move-to-today",
		api.BulkTaskRequest{TaskIDs: []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed id
	w = env.do(http.MethodPost, "/tasks/bulk/move-to-today",
		api.BulkTaskRequest{TaskIDs: []string{"not-a-uuid"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed body
	req := httptest.NewRequest(http.MethodPost, "/tasks/bulk/move-to-today",
		bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkEndpointUnknownTask(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, uuid.New())

	w := env.do(http.MethodPost, "/tasks/bulk/move-to-pending",
		api.BulkTaskRequest{TaskIDs: []string{uuid.NewString()}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
