package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `
	id, title, assignee_id, deadline, status, assigned_at, acknowledged_at,
	is_delayed, delayed_at, created_at, updated_at
`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.AssigneeID, &t.Deadline, &t.Status, &t.AssignedAt, &t.AcknowledgedAt,
		&t.IsDelayed, &t.DelayedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func openStatuses() []string {
	statuses := make([]string, 0, len(task.OpenStatuses))
	for _, s := range task.OpenStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}

	return t, nil
}

// ListOpenByAssignee implements task.TaskRepository.
func (r *taskRepositoryImpl) ListOpenByAssignee(ctx context.Context, assigneeID string) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE assignee_id = $1 AND status = ANY($2)
		ORDER BY deadline ASC
	`

	return r.list(ctx, q, query, assigneeID, openStatuses())
}

// ListOverdueUnflagged implements task.TaskRepository.
func (r *taskRepositoryImpl) ListOverdueUnflagged(ctx context.Context, now time.Time, after *task.OverdueCursor, limit int) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	if after == nil {
		query := `SELECT ` + taskColumns + `
			FROM tasks
			WHERE deadline < $1 AND status = ANY($2) AND is_delayed = false
			ORDER BY deadline ASC, id ASC
			LIMIT $3
		`
		return r.list(ctx, q, query, now, openStatuses(), limit)
	}

	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE deadline < $1 AND status = ANY($2) AND is_delayed = false
			AND (deadline, id) > ($3, $4::uuid)
		ORDER BY deadline ASC, id ASC
		LIMIT $5
	`
	return r.list(ctx, q, query, now, openStatuses(), after.Deadline, after.ID, limit)
}

func (r *taskRepositoryImpl) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]task.Task, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// MarkDelayed implements task.TaskRepository. A task that is already flagged
// counts as not found.
func (r *taskRepositoryImpl) MarkDelayed(ctx context.Context, id string, delayedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET is_delayed = true, delayed_at = $2, updated_at = NOW()
		WHERE id = $1 AND is_delayed = false
	`

	commandTag, err := q.Exec(ctx, query, id, delayedAt)
	if err != nil {
		return fmt.Errorf("mark task %s delayed: %w", id, err)
	}
	if commandTag.RowsAffected() != 1 {
		return task.ErrTaskNotFound
	}
	return nil
}
