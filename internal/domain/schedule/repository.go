package schedule

import "context"

type CalendarRepository interface {
	GetByDeveloperID(ctx context.Context, developerID string) (CalendarConfig, error)
}
