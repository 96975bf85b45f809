package leave

import (
	"context"
	"time"
)

// LeaveRepository - interface for developer_leaves table
type LeaveRepository interface {
	// ListApproved returns approved leaves of the developer that intersect [from, to).
	ListApproved(ctx context.Context, developerID string, from, to time.Time) ([]LeaveRecord, error)
}
