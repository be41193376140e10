package service

import "errors"

// Common service errors exposed to the transport layer.
var (
	// ErrTaskNotFound is returned when the referenced task does not exist
	// or belongs to another user.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotificationNotFound is returned when the referenced notification
	// does not exist or belongs to another user.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmptyTaskList is returned when a bulk remediation is invoked with
	// no task ids.
	ErrEmptyTaskList = errors.New("task id list cannot be empty")
)
