package task

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusRevision   TaskStatus = "revision"
	TaskStatusApproved   TaskStatus = "approved"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// OpenStatuses are the statuses in which a task can still become delayed.
var OpenStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusInReview,
	TaskStatusRevision,
}

func (s TaskStatus) IsOpen() bool {
	for _, open := range OpenStatuses {
		if s == open {
			return true
		}
	}
	return false
}

// Task is a unit of work assigned to a designer or developer.
type Task struct {
	ID             string
	Title          string
	AssigneeID     string
	Deadline       time.Time
	Status         TaskStatus
	AssignedAt     time.Time
	AcknowledgedAt *time.Time
	IsDelayed      bool
	DelayedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
