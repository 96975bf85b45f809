package leave

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/worktime"
)

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "pending"
	LeaveStatusApproved  LeaveStatus = "approved"
	LeaveStatusRejected  LeaveStatus = "rejected"
	LeaveStatusCancelled LeaveStatus = "cancelled"
)

// LeaveRecord is a continuous interval during which a developer is away.
type LeaveRecord struct {
	ID          string
	DeveloperID string
	StartAt     time.Time
	EndAt       time.Time
	Reason      *string
	Status      LeaveStatus
	CreatedAt   time.Time
}

// ToWorktime converts records into calculator intervals, one per record.
// Overlapping records are kept as they are.
func ToWorktime(records []LeaveRecord) []worktime.Leave {
	if len(records) == 0 {
		return nil
	}
	leaves := make([]worktime.Leave, 0, len(records))
	for _, r := range records {
		leaves = append(leaves, worktime.Leave{Start: r.StartAt, End: r.EndAt})
	}
	return leaves
}
