package deadline

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
)

type Service interface {
	// Task delay
	GetTaskDelay(ctx context.Context, taskID string, now time.Time) (DelayStatusResponse, error)
	ListDeveloperDelays(ctx context.Context, developerID string, now time.Time) (ListDelayStatusResponse, error)
	GetAcknowledgementStatus(ctx context.Context, taskID string, now time.Time) (AcknowledgementStatusResponse, error)

	// Calendar
	GetEffectiveCalendar(ctx context.Context, developerID string) (schedule.CalendarResponse, error)

	// Stateless
	Compute(ctx context.Context, req ComputeRequest) (ComputeResponse, error)

	// Background
	FlagDelayedTasks(ctx context.Context, now time.Time) (int, error)
}
