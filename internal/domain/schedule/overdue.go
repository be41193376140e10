package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// DetectOverdue returns the tasks that are past due at the given time: not
// completed and due strictly before now. A task due exactly at now is not
// yet overdue. Output preserves input order.
func DetectOverdue(tasks []*domain.Task, now time.Time) []*domain.Task {
	var overdue []*domain.Task
	for _, t := range tasks {
		if t.IsOverdue(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// BuildOverdueNotification materializes a single aggregate notification for
// the given overdue task set, or returns nil if the set is empty. The title
// and description are derived from the count; the notification's task
// references hold the full overdue list. now stamps the notification's
// creation time, so the function stays deterministic like the rest of the
// scheduling core.
func BuildOverdueNotification(
	userID uuid.UUID,
	overdueTasks []*domain.Task,
	now time.Time,
) (*domain.Notification, error) {
	if len(overdueTasks) == 0 {
		return nil, nil
	}

	taskIDs := make([]uuid.UUID, len(overdueTasks))
	for i, t := range overdueTasks {
		taskIDs[i] = t.ID
	}

	title := "1 task is overdue"
	description := "You have 1 task past its due date. Move it to today or set it aside as pending."
	if len(overdueTasks) > 1 {
		title = fmt.Sprintf("%d tasks are overdue", len(overdueTasks))
		description = fmt.Sprintf(
			"You have %d tasks past their due dates. Move them to today or set them aside as pending.",
			len(overdueTasks),
		)
	}

	return domain.NewNotification(
		userID,
		domain.NotificationTypeOverdueTasks,
		title,
		description,
		taskIDs,
		now,
	)
}
