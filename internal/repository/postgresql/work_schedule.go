package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type calendarRepositoryImpl struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) schedule.CalendarRepository {
	return &calendarRepositoryImpl{db: db}
}

// GetByDeveloperID implements schedule.CalendarRepository.
func (r *calendarRepositoryImpl) GetByDeveloperID(ctx context.Context, developerID string) (schedule.CalendarConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, developer_id, working_days,
			   to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
			   to_char(saturday_start_time, 'HH24:MI'), to_char(saturday_end_time, 'HH24:MI'),
			   timezone, created_at, updated_at
		FROM developer_calendars
		WHERE developer_id = $1
	`

	var cal schedule.CalendarConfig
	var workingDays []int32

	err := q.QueryRow(ctx, query, developerID).Scan(
		&cal.ID, &cal.DeveloperID, &workingDays,
		&cal.StartTime, &cal.EndTime,
		&cal.SaturdayStartTime, &cal.SaturdayEndTime,
		&cal.Timezone, &cal.CreatedAt, &cal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.CalendarConfig{}, schedule.ErrCalendarNotFound
		}
		return schedule.CalendarConfig{}, fmt.Errorf("get calendar for developer %s: %w", developerID, err)
	}

	cal.WorkingDays = make([]int, 0, len(workingDays))
	for _, day := range workingDays {
		cal.WorkingDays = append(cal.WorkingDays, int(day))
	}

	return cal, nil
}
