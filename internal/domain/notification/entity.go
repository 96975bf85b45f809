package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeTaskDelayed NotificationType = "task_delayed"
)

// Notification is an in-app notification row read by the portal bell.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	CreatedAt   time.Time
}
