package worktime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a Clock value.
const MinutesPerDay = 24 * 60

// Clock is a wall-clock time of day in minutes since midnight, in [0, 1440).
type Clock int

// ParseClock parses an "HH:MM" string. A trailing ":SS" part is accepted and
// ignored, since Postgres time columns are often rendered that way.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidCalendar, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 2 || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: time %q has an invalid hour", ErrInvalidCalendar, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: time %q has an invalid minute", ErrInvalidCalendar, s)
	}

	return Clock(hour*60 + minute), nil
}

// String renders the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Duration returns the offset of the clock from midnight.
func (c Clock) Duration() time.Duration {
	return time.Duration(c) * time.Minute
}

// On returns the instant at clock c on the calendar day of t, in t's location.
func (c Clock) On(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, int(c)/60, int(c)%60, 0, 0, t.Location())
}

// sinceMidnight is the offset of t from the start of its calendar day.
func sinceMidnight(t time.Time) time.Duration {
	y, m, d := t.Date()
	return t.Sub(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}
