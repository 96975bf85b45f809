package deadline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/deadline"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/worktime-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Config struct {
	AckThresholdMinutes int
	DefaultTimezone     string
	FlagBatchSize       int
	Concurrency         int
}

const (
	defaultFlagBatchSize = 200
	defaultConcurrency   = 8
)

type deadlineServiceImpl struct {
	tx               Transactor
	taskRepo         task.TaskRepository
	calendarRepo     schedule.CalendarRepository
	leaveRepo        leave.LeaveRepository
	notificationRepo notification.Repository
	cfg              Config
}

func NewDeadlineService(
	tx Transactor,
	taskRepo task.TaskRepository,
	calendarRepo schedule.CalendarRepository,
	leaveRepo leave.LeaveRepository,
	notificationRepo notification.Repository,
	cfg Config,
) deadline.Service {
	if cfg.FlagBatchSize <= 0 {
		cfg.FlagBatchSize = defaultFlagBatchSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &deadlineServiceImpl{
		tx:               tx,
		taskRepo:         taskRepo,
		calendarRepo:     calendarRepo,
		leaveRepo:        leaveRepo,
		notificationRepo: notificationRepo,
		cfg:              cfg,
	}
}

// GetTaskDelay implements deadline.Service.
func (s *deadlineServiceImpl) GetTaskDelay(ctx context.Context, taskID string, now time.Time) (deadline.DelayStatusResponse, error) {
	t, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return deadline.DelayStatusResponse{}, err
	}

	cal, isDefault, err := s.calendarFor(ctx, t.AssigneeID)
	if err != nil {
		return deadline.DelayStatusResponse{}, err
	}

	leaves, err := s.leavesBetween(ctx, t.AssigneeID, now, t.Deadline)
	if err != nil {
		return deadline.DelayStatusResponse{}, err
	}

	return evaluate(cal, isDefault, t, now, leaves), nil
}

// ListDeveloperDelays implements deadline.Service.
func (s *deadlineServiceImpl) ListDeveloperDelays(ctx context.Context, developerID string, now time.Time) (deadline.ListDelayStatusResponse, error) {
	var (
		tasks     []task.Task
		cal       *worktime.Calendar
		isDefault bool
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		tasks, err = s.taskRepo.ListOpenByAssignee(gCtx, developerID)
		return err
	})

	g.Go(func() error {
		var err error
		cal, isDefault, err = s.calendarFor(gCtx, developerID)
		return err
	})

	if err := g.Wait(); err != nil {
		return deadline.ListDelayStatusResponse{}, err
	}

	result := deadline.ListDelayStatusResponse{
		DeveloperID: developerID,
		EvaluatedAt: now.UTC().Format(time.RFC3339),
		TotalCount:  len(tasks),
		Tasks:       make([]deadline.DelayStatusResponse, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	from, to := now, now
	for _, t := range tasks {
		if t.Deadline.Before(from) {
			from = t.Deadline
		}
		if t.Deadline.After(to) {
			to = t.Deadline
		}
	}
	leaves, err := s.leavesBetween(ctx, developerID, from, to)
	if err != nil {
		return deadline.ListDelayStatusResponse{}, err
	}

	// The calendar is immutable, so rows are evaluated in parallel.
	g, gCtx = errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, t := range tasks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result.Tasks[i] = evaluate(cal, isDefault, t, now, leaves)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return deadline.ListDelayStatusResponse{}, err
	}

	for _, row := range result.Tasks {
		if row.IsDelayed {
			result.DelayedCount++
		}
	}

	return result, nil
}

// GetAcknowledgementStatus implements deadline.Service.
func (s *deadlineServiceImpl) GetAcknowledgementStatus(ctx context.Context, taskID string, now time.Time) (deadline.AcknowledgementStatusResponse, error) {
	t, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return deadline.AcknowledgementStatusResponse{}, err
	}

	cal, _, err := s.calendarFor(ctx, t.AssigneeID)
	if err != nil {
		return deadline.AcknowledgementStatusResponse{}, err
	}

	until := now
	if t.AcknowledgedAt != nil {
		until = *t.AcknowledgedAt
	}

	leaves, err := s.leavesBetween(ctx, t.AssigneeID, t.AssignedAt, until)
	if err != nil {
		return deadline.AcknowledgementStatusResponse{}, err
	}

	minutes := cal.Remaining(t.AssignedAt, until, leaves)

	resp := deadline.AcknowledgementStatusResponse{
		TaskID:           t.ID,
		AssigneeID:       t.AssigneeID,
		AssignedAt:       t.AssignedAt.UTC().Format(time.RFC3339),
		IsAcknowledged:   t.AcknowledgedAt != nil,
		WorkingMinutes:   minutes,
		ThresholdMinutes: s.cfg.AckThresholdMinutes,
		IsLate:           minutes > s.cfg.AckThresholdMinutes,
	}
	if t.AcknowledgedAt != nil {
		ack := t.AcknowledgedAt.UTC().Format(time.RFC3339)
		resp.AcknowledgedAt = &ack
	}

	return resp, nil
}

// GetEffectiveCalendar implements deadline.Service.
func (s *deadlineServiceImpl) GetEffectiveCalendar(ctx context.Context, developerID string) (schedule.CalendarResponse, error) {
	record, isDefault, err := s.calendarRecord(ctx, developerID)
	if err != nil {
		return schedule.CalendarResponse{}, err
	}

	cal, err := worktime.NewCalendar(record.WorktimeConfig())
	if err != nil {
		return schedule.CalendarResponse{}, fmt.Errorf("calendar of developer %s: %w", developerID, err)
	}

	resp := schedule.CalendarResponse{
		ID:                  record.ID,
		DeveloperID:         developerID,
		WorkingDays:         record.WorkingDays,
		StartTime:           record.StartTime,
		EndTime:             record.EndTime,
		SaturdayStartTime:   record.SaturdayStartTime,
		SaturdayEndTime:     record.SaturdayEndTime,
		Timezone:            record.Timezone,
		IsOvernight:         cal.ShiftWindowFor(worktime.Monday).Overnight,
		IsSaturdayOvernight: cal.ShiftWindowFor(worktime.Saturday).Overnight,
		IsDefault:           isDefault,
	}
	if !record.UpdatedAt.IsZero() {
		updatedAt := record.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &updatedAt
	}

	return resp, nil
}

// Compute implements deadline.Service.
func (s *deadlineServiceImpl) Compute(ctx context.Context, req deadline.ComputeRequest) (deadline.ComputeResponse, error) {
	if err := req.Validate(); err != nil {
		return deadline.ComputeResponse{}, err
	}

	now, _ := validator.IsValidDateTime(req.Now)
	due, _ := validator.IsValidDateTime(req.Deadline)

	leaves, err := leave.ParseLeaves(req.Leaves)
	if err != nil {
		return deadline.ComputeResponse{}, err
	}

	cal, err := worktime.NewCalendar(req.Calendar.ToEntity().WorktimeConfig())
	if err != nil {
		return deadline.ComputeResponse{}, err
	}

	remaining := cal.Remaining(now, due, leaves)
	overdue := cal.Overdue(now, due, leaves)

	return deadline.ComputeResponse{
		RemainingMinutes: remaining,
		OverdueMinutes:   overdue,
		RemainingHours:   minutesToHours(remaining),
		OverdueHours:     minutesToHours(overdue),
		IsDelayed:        overdue > 0,
	}, nil
}

// FlagDelayedTasks implements deadline.Service. It pages through every overdue
// unflagged task so tasks that can never be flagged do not hide newer ones.
func (s *deadlineServiceImpl) FlagDelayedTasks(ctx context.Context, now time.Time) (int, error) {
	calendars := make(map[string]*worktime.Calendar)
	flagged := 0

	var cursor *task.OverdueCursor
	for {
		tasks, err := s.taskRepo.ListOverdueUnflagged(ctx, now, cursor, s.cfg.FlagBatchSize)
		if err != nil {
			return flagged, fmt.Errorf("list overdue tasks: %w", err)
		}

		for _, t := range tasks {
			if err := ctx.Err(); err != nil {
				return flagged, err
			}
			if s.flagTask(ctx, t, now, calendars) {
				flagged++
			}
		}

		if len(tasks) < s.cfg.FlagBatchSize {
			return flagged, nil
		}
		last := tasks[len(tasks)-1]
		cursor = &task.OverdueCursor{Deadline: last.Deadline, ID: last.ID}
	}
}

// flagTask marks t delayed and notifies its assignee when working time has
// elapsed past the deadline. Failures are logged and reported as not flagged.
func (s *deadlineServiceImpl) flagTask(ctx context.Context, t task.Task, now time.Time, calendars map[string]*worktime.Calendar) bool {
	cal, ok := calendars[t.AssigneeID]
	if !ok {
		var err error
		cal, _, err = s.calendarFor(ctx, t.AssigneeID)
		if err != nil {
			slog.Warn("Skipping task with unusable calendar", "task_id", t.ID, "assignee_id", t.AssigneeID, "error", err)
			return false
		}
		calendars[t.AssigneeID] = cal
	}

	leaves, err := s.leavesBetween(ctx, t.AssigneeID, t.Deadline, now)
	if err != nil {
		slog.Error("Failed to load leaves", "task_id", t.ID, "error", err)
		return false
	}

	overdue := cal.Overdue(now, t.Deadline, leaves)
	if overdue == 0 {
		return false
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.MarkDelayed(ctx, t.ID, now); err != nil {
			return err
		}
		return s.notificationRepo.Create(ctx, &notification.Notification{
			RecipientID: t.AssigneeID,
			Type:        notification.TypeTaskDelayed,
			Title:       "Task delayed",
			Message:     fmt.Sprintf("%q is %s past its deadline", t.Title, formatWorkHours(overdue)),
			Data: map[string]interface{}{
				"task_id":         t.ID,
				"deadline":        t.Deadline.UTC().Format(time.RFC3339),
				"overdue_minutes": overdue,
			},
		})
	})
	if errors.Is(err, task.ErrTaskNotFound) {
		// Flagged concurrently by another run.
		return false
	}
	if err != nil {
		slog.Error("Failed to flag delayed task", "task_id", t.ID, "error", err)
		return false
	}

	slog.Info("Task flagged as delayed", "task_id", t.ID, "assignee_id", t.AssigneeID, "overdue_minutes", overdue)
	return true
}

// calendarRecord returns the developer's stored calendar, or the agency default.
func (s *deadlineServiceImpl) calendarRecord(ctx context.Context, developerID string) (schedule.CalendarConfig, bool, error) {
	record, err := s.calendarRepo.GetByDeveloperID(ctx, developerID)
	if errors.Is(err, schedule.ErrCalendarNotFound) {
		return fixtures.DefaultCalendar(developerID, s.cfg.DefaultTimezone), true, nil
	}
	if err != nil {
		return schedule.CalendarConfig{}, false, err
	}
	return record, false, nil
}

func (s *deadlineServiceImpl) calendarFor(ctx context.Context, developerID string) (*worktime.Calendar, bool, error) {
	record, isDefault, err := s.calendarRecord(ctx, developerID)
	if err != nil {
		return nil, false, err
	}

	cal, err := worktime.NewCalendar(record.WorktimeConfig())
	if err != nil {
		return nil, false, fmt.Errorf("calendar of developer %s: %w", developerID, err)
	}
	return cal, isDefault, nil
}

// leavesBetween loads approved leaves intersecting the span between a and b, in either order.
func (s *deadlineServiceImpl) leavesBetween(ctx context.Context, developerID string, a, b time.Time) ([]worktime.Leave, error) {
	from, to := a, b
	if to.Before(from) {
		from, to = to, from
	}
	records, err := s.leaveRepo.ListApproved(ctx, developerID, from, to)
	if err != nil {
		return nil, err
	}
	return leave.ToWorktime(records), nil
}

func evaluate(cal *worktime.Calendar, isDefault bool, t task.Task, now time.Time, leaves []worktime.Leave) deadline.DelayStatusResponse {
	remaining := cal.Remaining(now, t.Deadline, leaves)
	overdue := cal.Overdue(now, t.Deadline, leaves)

	label := formatWorkHours(remaining) + " left"
	if overdue > 0 {
		label = formatWorkHours(overdue) + " overdue"
	}

	return deadline.DelayStatusResponse{
		TaskID:           t.ID,
		Title:            t.Title,
		AssigneeID:       t.AssigneeID,
		Status:           string(t.Status),
		Deadline:         t.Deadline.UTC().Format(time.RFC3339),
		EvaluatedAt:      now.UTC().Format(time.RFC3339),
		RemainingMinutes: remaining,
		OverdueMinutes:   overdue,
		RemainingHours:   minutesToHours(remaining),
		OverdueHours:     minutesToHours(overdue),
		Label:            label,
		IsDelayed:        overdue > 0,
		CalendarDefault:  isDefault,
	}
}

// formatWorkHours formats minutes to "Xh Ym" format
func formatWorkHours(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}
