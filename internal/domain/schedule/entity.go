package schedule

import (
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/worktime"
)

// CalendarConfig is the weekly working calendar of a developer.
type CalendarConfig struct {
	ID                string
	DeveloperID       string
	WorkingDays       []int  // 1=Monday, ..., 7=Sunday
	StartTime         string // "HH:MM"
	EndTime           string // "HH:MM"
	SaturdayStartTime *string
	SaturdayEndTime   *string
	Timezone          string // IANA name, e.g. Asia/Karachi
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WorktimeConfig converts the record into the calculator input.
func (c CalendarConfig) WorktimeConfig() worktime.Config {
	cfg := worktime.Config{
		WorkingDays: c.WorkingDays,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Timezone:    c.Timezone,
	}
	if c.SaturdayStartTime != nil {
		cfg.SaturdayStartTime = *c.SaturdayStartTime
	}
	if c.SaturdayEndTime != nil {
		cfg.SaturdayEndTime = *c.SaturdayEndTime
	}
	return cfg
}
