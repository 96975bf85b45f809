package worktime

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCalendar is wrapped by every configuration error of this package.
var ErrInvalidCalendar = errors.New("invalid calendar configuration")

// ISO weekday numbers.
const (
	Monday   = 1
	Saturday = 6
	Sunday   = 7
)

// Config is the weekly working calendar of one developer.
type Config struct {
	WorkingDays       []int // 1=Monday, ..., 7=Sunday
	StartTime         string
	EndTime           string
	SaturdayStartTime string // falls back to StartTime when empty
	SaturdayEndTime   string // falls back to EndTime when empty
	Timezone          string
}

// Leave is an absolute interval during which the developer is unavailable.
type Leave struct {
	Start time.Time
	End   time.Time
}

// ShiftWindow is the daily working window of a weekday.
type ShiftWindow struct {
	Start     Clock
	End       Clock
	Overnight bool // End <= Start, the window wraps past midnight
}

func newShiftWindow(start, end Clock) ShiftWindow {
	return ShiftWindow{Start: start, End: end, Overnight: end <= start}
}

// Calendar is a validated Config bound to a Zone. It is immutable and safe
// for concurrent use.
type Calendar struct {
	workingDays [8]bool
	standard    ShiftWindow
	saturday    ShiftWindow
	zone        Zone
}

// NewCalendar validates cfg and loads its timezone.
func NewCalendar(cfg Config) (*Calendar, error) {
	zone, err := LoadZone(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return NewCalendarInZone(cfg, zone)
}

// NewCalendarInZone validates cfg and binds it to zone, ignoring cfg.Timezone.
func NewCalendarInZone(cfg Config, zone Zone) (*Calendar, error) {
	if zone == nil {
		return nil, fmt.Errorf("%w: zone is required", ErrInvalidCalendar)
	}

	c := &Calendar{zone: zone}
	for _, day := range cfg.WorkingDays {
		if day < Monday || day > Sunday {
			return nil, fmt.Errorf("%w: working day %d is outside 1..7", ErrInvalidCalendar, day)
		}
		c.workingDays[day] = true
	}

	start, err := ParseClock(cfg.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseClock(cfg.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	c.standard = newShiftWindow(start, end)

	satStart, satEnd := start, end
	if cfg.SaturdayStartTime != "" {
		if satStart, err = ParseClock(cfg.SaturdayStartTime); err != nil {
			return nil, fmt.Errorf("saturday_start_time: %w", err)
		}
	}
	if cfg.SaturdayEndTime != "" {
		if satEnd, err = ParseClock(cfg.SaturdayEndTime); err != nil {
			return nil, fmt.Errorf("saturday_end_time: %w", err)
		}
	}
	c.saturday = newShiftWindow(satStart, satEnd)

	return c, nil
}

// IsWorkingDay reports whether the ISO weekday is in the calendar.
func (c *Calendar) IsWorkingDay(day int) bool {
	if day < Monday || day > Sunday {
		return false
	}
	return c.workingDays[day]
}

// ShiftWindowFor returns the window that applies on the ISO weekday.
func (c *Calendar) ShiftWindowFor(day int) ShiftWindow {
	if day == Saturday {
		return c.saturday
	}
	return c.standard
}

// ISOWeekday converts t's weekday to 1=Monday..7=Sunday.
func ISOWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return Sunday
}
