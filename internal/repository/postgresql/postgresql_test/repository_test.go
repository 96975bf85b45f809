package postgresqltest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarRepository_GetByDeveloperID(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	developerID := uuid.New().String()
	_, err := setup.DB.Exec(ctx, `
		INSERT INTO developer_calendars (developer_id, working_days, start_time, end_time, saturday_start_time, timezone)
		VALUES ($1, '{1,2,3,4,5,6}', '22:00', '06:00', '10:00', 'Asia/Karachi')
	`, developerID)
	require.NoError(t, err)

	repo := postgresql.NewCalendarRepository(setup.DB)
	cal, err := repo.GetByDeveloperID(ctx, developerID)
	require.NoError(t, err)

	assert.Equal(t, developerID, cal.DeveloperID)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, cal.WorkingDays)
	assert.Equal(t, "22:00", cal.StartTime)
	assert.Equal(t, "06:00", cal.EndTime)
	require.NotNil(t, cal.SaturdayStartTime)
	assert.Equal(t, "10:00", *cal.SaturdayStartTime)
	assert.Nil(t, cal.SaturdayEndTime)
	assert.Equal(t, "Asia/Karachi", cal.Timezone)

	_, err = repo.GetByDeveloperID(ctx, uuid.New().String())
	assert.True(t, errors.Is(err, schedule.ErrCalendarNotFound))
}

func TestLeaveRepository_ListApproved(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	developerID := uuid.New().String()
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		start, end time.Time
		status     string
	}{
		{day.Add(12 * time.Hour), day.Add(13 * time.Hour), "approved"},
		{day.Add(14 * time.Hour), day.Add(15 * time.Hour), "pending"},
		{day.AddDate(0, 0, 10), day.AddDate(0, 0, 11), "approved"},
	}
	for _, r := range rows {
		_, err := setup.DB.Exec(ctx, `
			INSERT INTO developer_leaves (developer_id, start_at, end_at, status) VALUES ($1, $2, $3, $4)
		`, developerID, r.start, r.end, r.status)
		require.NoError(t, err)
	}

	repo := postgresql.NewLeaveRepository(setup.DB)
	leaves, err := repo.ListApproved(ctx, developerID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, leaves, 1)
	assert.True(t, leaves[0].StartAt.Equal(day.Add(12*time.Hour)))
}

func TestTaskRepository_OverdueAndMarkDelayed(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	assigneeID := uuid.New().String()
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	var overdueID string
	err := setup.DB.QueryRow(ctx, `
		INSERT INTO tasks (title, assignee_id, deadline, status, assigned_at)
		VALUES ('Landing page', $1, $2, 'in_progress', $3) RETURNING id
	`, assigneeID, now.Add(-time.Hour), now.Add(-48*time.Hour)).Scan(&overdueID)
	require.NoError(t, err)
	_, err = setup.DB.Exec(ctx, `
		INSERT INTO tasks (title, assignee_id, deadline, status, assigned_at)
		VALUES ('Logo', $1, $2, 'approved', $3), ('Banner', $1, $4, 'todo', $3)
	`, assigneeID, now.Add(-time.Hour), now.Add(-48*time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	repo := postgresql.NewTaskRepository(setup.DB)

	open, err := repo.ListOpenByAssignee(ctx, assigneeID)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	overdue, err := repo.ListOverdueUnflagged(ctx, now, nil, 10)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, overdueID, overdue[0].ID)

	next, err := repo.ListOverdueUnflagged(ctx, now, &task.OverdueCursor{Deadline: overdue[0].Deadline, ID: overdue[0].ID}, 10)
	require.NoError(t, err)
	assert.Empty(t, next)

	tx := postgresql.NewTransactor(setup.DB)
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return repo.MarkDelayed(ctx, overdueID, now)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, overdueID)
	require.NoError(t, err)
	assert.True(t, got.IsDelayed)
	require.NotNil(t, got.DelayedAt)

	assert.ErrorIs(t, repo.MarkDelayed(ctx, overdueID, now), task.ErrTaskNotFound)

	_, err = repo.GetByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestNotificationRepository_Create(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	repo := postgresql.NewNotificationRepository(setup.DB)
	n := &notification.Notification{
		RecipientID: uuid.New().String(),
		Type:        notification.TypeTaskDelayed,
		Title:       "Task delayed",
		Message:     "Landing page is overdue",
		Data:        map[string]interface{}{"task_id": uuid.New().String()},
	}

	require.NoError(t, repo.Create(ctx, n))
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())

	var count int
	require.NoError(t, setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE id = $1`, n.ID).Scan(&count))
	assert.Equal(t, 1, count)
}
