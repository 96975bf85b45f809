package task

import (
	"context"
	"time"
)

// OverdueCursor is the last (deadline, id) seen when paging overdue tasks.
type OverdueCursor struct {
	Deadline time.Time
	ID       string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (Task, error)
	ListOpenByAssignee(ctx context.Context, assigneeID string) ([]Task, error)
	// ListOverdueUnflagged returns open tasks past their deadline at now that are not marked delayed yet,
	// ordered by (deadline, id) and starting strictly after the cursor when one is given.
	ListOverdueUnflagged(ctx context.Context, now time.Time, after *OverdueCursor, limit int) ([]Task, error)
	MarkDelayed(ctx context.Context, id string, delayedAt time.Time) error
}
