package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/deadline"
)

const FlagDelayedTasksJob = "flag_delayed_tasks"

type DelayJobs struct {
	deadlineService deadline.Service
	interval        time.Duration
	now             func() time.Time
}

func NewDelayJobs(deadlineService deadline.Service, interval time.Duration) *DelayJobs {
	return &DelayJobs{
		deadlineService: deadlineService,
		interval:        interval,
		now:             time.Now,
	}
}

func (j *DelayJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(FlagDelayedTasksJob, j.interval, j.FlagDelayedTasks)
}

// FlagDelayedTasks marks open tasks that have accrued overdue working time.
func (j *DelayJobs) FlagDelayedTasks(ctx context.Context) error {
	now := j.now().UTC()

	flagged, err := j.deadlineService.FlagDelayedTasks(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to flag delayed tasks: %w", err)
	}

	if flagged > 0 {
		slog.Info("Cron: Delayed tasks flagged", "count", flagged, "evaluated_at", now)
	} else {
		slog.Debug("Cron: No newly delayed tasks", "evaluated_at", now)
	}
	return nil
}
