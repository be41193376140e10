package api

import (
	"time"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/service"
)

// SubtaskResponse represents a subtask in API responses.
type SubtaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskURLResponse represents a task link in API responses.
type TaskURLResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// RecurrenceResponse represents a recurrence config in API responses.
type RecurrenceResponse struct {
	Cadence        string     `json:"cadence"`
	Interval       int        `json:"interval"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	MaxOccurrences *int       `json:"max_occurrences,omitempty"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID                    string              `json:"id"`
	Title                 string              `json:"title"`
	Notes                 string              `json:"notes,omitempty"`
	Status                string              `json:"status"`
	DueDate               *time.Time          `json:"due_date,omitempty"`
	CompletedAt           *time.Time          `json:"completed_at,omitempty"`
	Recurrence            *RecurrenceResponse `json:"recurrence,omitempty"`
	ParentRecurringTaskID string              `json:"parent_recurring_task_id,omitempty"`
	IsRecurringInstance   bool                `json:"is_recurring_instance,omitempty"`
	Subtasks              []SubtaskResponse   `json:"subtasks,omitempty"`
	URLs                  []TaskURLResponse   `json:"urls,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// NotificationResponse represents the response data for a notification.
type NotificationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Read        bool      `json:"read"`
	TaskIDs     []string  `json:"task_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerationFailureResponse reports one series whose instance generation
// was skipped during a planning pass.
type GenerationFailureResponse struct {
	TaskID string `json:"task_id"`
	Reason string `json:"reason"`
}

// GenerationResponse represents the outcome of a planning pass.
type GenerationResponse struct {
	Created  []TaskResponse              `json:"created"`
	Failures []GenerationFailureResponse `json:"failures,omitempty"`
}

// CompleteTaskResponse represents the outcome of completing a task.
type CompleteTaskResponse struct {
	Task       TaskResponse       `json:"task"`
	Generation GenerationResponse `json:"generation"`
}

// taskToResponse transforms a domain task into its response form.
func taskToResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:                  t.ID.String(),
		Title:               t.Title,
		Notes:               t.Notes,
		Status:              string(t.Status),
		DueDate:             t.DueDate,
		CompletedAt:         t.CompletedAt,
		IsRecurringInstance: t.IsRecurringInstance,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}

	if t.ParentRecurringTaskID != nil {
		resp.ParentRecurringTaskID = t.ParentRecurringTaskID.String()
	}
	if t.Recurrence != nil {
		resp.Recurrence = &RecurrenceResponse{
			Cadence:        string(t.Recurrence.Cadence),
			Interval:       t.Recurrence.Interval,
			EndDate:        t.Recurrence.EndDate,
			MaxOccurrences: t.Recurrence.MaxOccurrences,
		}
	}
	for _, st := range t.Subtasks {
		resp.Subtasks = append(resp.Subtasks, SubtaskResponse{
			ID:        st.ID.String(),
			Title:     st.Title,
			Completed: st.Completed,
		})
	}
	for _, u := range t.URLs {
		resp.URLs = append(resp.URLs, TaskURLResponse{
			ID:  u.ID.String(),
			URL: u.URL,
		})
	}

	return resp
}

// generationToResponse transforms a service generation result.
func generationToResponse(result *service.GenerationResult) GenerationResponse {
	resp := GenerationResponse{
		Created: make([]TaskResponse, 0, len(result.Created)),
	}
	for _, t := range result.Created {
		resp.Created = append(resp.Created, taskToResponse(t))
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, GenerationFailureResponse{
			TaskID: f.TaskID.String(),
			Reason: f.Err.Error(),
		})
	}
	return resp
}

// notificationToResponse transforms a domain notification.
func notificationToResponse(n *domain.Notification) NotificationResponse {
	taskIDs := make([]string, len(n.TaskIDs))
	for i, id := range n.TaskIDs {
		taskIDs[i] = id.String()
	}

	return NotificationResponse{
		ID:          n.ID.String(),
		Type:        string(n.Type),
		Title:       n.Title,
		Description: n.Description,
		Read:        n.Read,
		TaskIDs:     taskIDs,
		CreatedAt:   n.CreatedAt,
	}
}
