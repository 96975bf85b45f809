package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// ListApproved implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApproved(ctx context.Context, developerID string, from, to time.Time) ([]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, developer_id, start_at, end_at, reason, status, created_at
		FROM developer_leaves
		WHERE developer_id = $1
		  AND status = $2
		  AND start_at < $4
		  AND end_at > $3
		ORDER BY start_at ASC
	`

	rows, err := q.Query(ctx, query, developerID, string(leave.LeaveStatusApproved), from, to)
	if err != nil {
		return nil, fmt.Errorf("list leaves for developer %s: %w", developerID, err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var lr leave.LeaveRecord
		err := rows.Scan(
			&lr.ID,
			&lr.DeveloperID,
			&lr.StartAt,
			&lr.EndAt,
			&lr.Reason,
			&lr.Status,
			&lr.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
