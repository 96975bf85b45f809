package worktime

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-01-05 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, 1, day, hour, minute, 0, 0, time.UTC)
}

func officeConfig() Config {
	return Config{
		WorkingDays: []int{1, 2, 3, 4, 5},
		StartTime:   "09:00",
		EndTime:     "17:00",
		Timezone:    "UTC",
	}
}

func nightConfig() Config {
	return Config{
		WorkingDays: []int{1, 2, 3, 4, 5},
		StartTime:   "22:00",
		EndTime:     "06:00",
		Timezone:    "UTC",
	}
}

// nightWeekConfig works nights every day except Saturday, which is a day shift.
func nightWeekConfig() Config {
	return Config{
		WorkingDays:       []int{1, 2, 3, 4, 5, 6, 7},
		StartTime:         "22:00",
		EndTime:           "06:00",
		SaturdayStartTime: "10:00",
		SaturdayEndTime:   "15:00",
		Timezone:          "UTC",
	}
}

// lateSaturdayConfig works office days and one overnight Saturday shift.
func lateSaturdayConfig() Config {
	return Config{
		WorkingDays:       []int{1, 2, 3, 4, 5, 6},
		StartTime:         "09:00",
		EndTime:           "17:00",
		SaturdayStartTime: "20:00",
		SaturdayEndTime:   "02:00",
		Timezone:          "UTC",
	}
}

func mustCalendar(t *testing.T, cfg Config) *Calendar {
	t.Helper()
	cal, err := NewCalendar(cfg)
	require.NoError(t, err)
	return cal
}

func TestRemaining_Scenarios(t *testing.T) {
	saturdayCfg := Config{
		WorkingDays:       []int{1, 2, 3, 4, 5, 6},
		StartTime:         "10:00",
		EndTime:           "19:00",
		SaturdayStartTime: "10:00",
		SaturdayEndTime:   "15:00",
		Timezone:          "UTC",
	}

	cases := []struct {
		name     string
		cfg      Config
		now      time.Time
		deadline time.Time
		leaves   []Leave
		want     int
	}{
		{"full office day", officeConfig(), at(5, 9, 0), at(5, 17, 0), nil, 480},
		{"before shift start", officeConfig(), at(5, 7, 0), at(5, 10, 0), nil, 60},
		{"after shift end rolls to next day", officeConfig(), at(5, 16, 0), at(6, 9, 0), nil, 60},
		{"deadline inside next day", officeConfig(), at(5, 16, 0), at(6, 11, 30), nil, 210},
		{"weekend skipped", officeConfig(), at(9, 16, 0), at(12, 10, 0), nil, 120},
		{"deadline on weekend", officeConfig(), at(9, 16, 0), at(10, 12, 0), nil, 60},
		{"lunch leave", officeConfig(), at(5, 9, 0), at(5, 17, 0), []Leave{{Start: at(5, 12, 0), End: at(5, 13, 0)}}, 420},
		{"overnight same window", nightConfig(), at(5, 23, 0), at(6, 5, 0), nil, 360},
		{"overnight tail then evening", nightConfig(), at(6, 2, 0), at(7, 3, 0), nil, 540},
		{"no tail after non-working day", nightConfig(), at(5, 2, 0), at(6, 3, 0), nil, 300},
		{"overnight before start", nightConfig(), at(5, 12, 0), at(5, 23, 30), nil, 90},
		{"overnight into weekend", nightConfig(), at(9, 23, 0), at(12, 1, 0), nil, 420},
		{"overnight weekend start", nightConfig(), at(11, 12, 0), at(12, 7, 0), nil, 0},
		{"saturday override", saturdayCfg, at(9, 18, 0), at(12, 11, 0), nil, 420},
		{"overnight friday into day saturday", nightWeekConfig(), at(9, 23, 0), at(10, 12, 0), nil, 540},
		{"inside friday tail on saturday", nightWeekConfig(), at(10, 4, 0), at(10, 11, 0), nil, 180},
		{"day saturday into overnight sunday", nightWeekConfig(), at(10, 10, 0), at(11, 23, 0), nil, 360},
		{"day saturday into overnight monday", Config{
			WorkingDays:       []int{1, 2, 3, 4, 5, 6},
			StartTime:         "22:00",
			EndTime:           "06:00",
			SaturdayStartTime: "10:00",
			SaturdayEndTime:   "15:00",
			Timezone:          "UTC",
		}, at(10, 14, 0), at(13, 1, 0), nil, 240},
		{"lone monday night", Config{
			WorkingDays: []int{1},
			StartTime:   "22:00",
			EndTime:     "06:00",
			Timezone:    "UTC",
		}, at(11, 12, 0), at(12, 7, 0), nil, 0},
		{"overnight saturday into non-working sunday", lateSaturdayConfig(), at(10, 21, 0), at(12, 10, 0), nil, 360},
		{"inside saturday tail on sunday", lateSaturdayConfig(), at(11, 1, 0), at(11, 12, 0), nil, 60},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := RemainingWorkingMinutes(c.now, c.deadline, c.cfg, c.leaves)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestRemaining_ZeroWhenDeadlineNotAfterNow(t *testing.T) {
	cal := mustCalendar(t, officeConfig())

	assert.Equal(t, 0, cal.Remaining(at(5, 10, 0), at(5, 10, 0), nil))
	assert.Equal(t, 0, cal.Remaining(at(6, 10, 0), at(5, 10, 0), nil))
	assert.Equal(t, 0, mustCalendar(t, nightConfig()).Remaining(at(6, 1, 0), at(5, 23, 0), nil))
}

func TestRemaining_TruncatesPartialMinutes(t *testing.T) {
	cal := mustCalendar(t, officeConfig())
	now := at(5, 9, 0).Add(30 * time.Second)

	assert.Equal(t, 59, cal.Remaining(now, at(5, 10, 0), nil))
}

func TestRemaining_NoWorkingDays(t *testing.T) {
	cfg := officeConfig()
	cfg.WorkingDays = nil
	cal := mustCalendar(t, cfg)

	assert.Equal(t, 0, cal.Remaining(at(5, 9, 0), at(26, 17, 0), nil))
	assert.Equal(t, 0, cal.Remaining(at(5, 9, 0), at(5, 9, 0).AddDate(5, 0, 0), nil))
}

func TestRemaining_IterationCapReturnsPartialSum(t *testing.T) {
	cal := mustCalendar(t, officeConfig())
	now := at(5, 9, 0)

	got := cal.Remaining(now, now.AddDate(5, 0, 0), nil)

	// 730 iterations: 104 full weeks plus Monday and Tuesday.
	assert.Equal(t, 104*5*480+2*480, got)
}

func TestRemaining_LeaveNeverMakesResultNegative(t *testing.T) {
	cal := mustCalendar(t, officeConfig())
	leaves := []Leave{{Start: at(4, 0, 0), End: at(10, 0, 0)}}

	assert.Equal(t, 0, cal.Remaining(at(5, 9, 0), at(9, 17, 0), leaves))
	assert.Equal(t, 0, cal.Overdue(at(9, 17, 0), at(5, 9, 0), leaves))
}

func TestRemaining_OverlappingLeavesAreSubtractedTwice(t *testing.T) {
	cal := mustCalendar(t, officeConfig())
	lunch := Leave{Start: at(5, 12, 0), End: at(5, 13, 0)}

	got := cal.Remaining(at(5, 9, 0), at(5, 17, 0), []Leave{lunch, lunch})

	assert.Equal(t, 360, got)
}

func TestRemaining_DoesNotMutateLeaves(t *testing.T) {
	cal := mustCalendar(t, officeConfig())
	leaves := []Leave{{Start: at(5, 12, 0), End: at(5, 13, 0)}}
	before := append([]Leave(nil), leaves...)

	cal.Remaining(at(5, 9, 0), at(6, 17, 0), leaves)

	assert.Equal(t, before, leaves)
}

func TestRemaining_MonotonicInNow(t *testing.T) {
	for _, cfg := range []Config{officeConfig(), nightConfig(), nightWeekConfig(), lateSaturdayConfig()} {
		cal := mustCalendar(t, cfg)
		deadline := at(14, 4, 0)
		leaves := []Leave{{Start: at(7, 3, 0), End: at(7, 14, 0)}}

		prev := cal.Remaining(at(4, 0, 0), deadline, leaves)
		for now := at(4, 0, 0); now.Before(deadline.Add(2 * time.Hour)); now = now.Add(37 * time.Minute) {
			got := cal.Remaining(now, deadline, leaves)
			require.LessOrEqual(t, got, prev, "now=%s", now)
			prev = got
		}
		assert.Equal(t, 0, prev)
	}
}

func TestOverdue_MirrorsRemaining(t *testing.T) {
	leaves := []Leave{{Start: at(6, 12, 0), End: at(6, 14, 0)}}
	pairs := []struct{ deadline, now time.Time }{
		{at(5, 9, 0), at(5, 17, 0)},
		{at(5, 16, 0), at(8, 10, 0)},
		{at(9, 23, 0), at(13, 2, 0)},
	}

	for _, cfg := range []Config{officeConfig(), nightConfig()} {
		cal := mustCalendar(t, cfg)
		for _, p := range pairs {
			assert.Equal(t, cal.Remaining(p.deadline, p.now, leaves), cal.Overdue(p.now, p.deadline, leaves))
		}
	}
}

func TestOverdue_ZeroBeforeDeadline(t *testing.T) {
	got, err := OverdueWorkingMinutes(at(5, 10, 0), at(5, 12, 0), officeConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = OverdueWorkingMinutes(at(5, 12, 0), at(5, 10, 0), officeConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 120, got)
}

func TestRemaining_ConvertsIntoCalendarTimezone(t *testing.T) {
	cfg := officeConfig()
	cfg.Timezone = "Asia/Karachi"

	// 04:00Z-12:00Z is 09:00-17:00 in Karachi (UTC+5).
	got, err := RemainingWorkingMinutes(at(5, 4, 0), at(5, 12, 0), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 480, got)

	// Sunday 23:00Z is already Monday 04:00 in Karachi, still before the shift.
	got, err = RemainingWorkingMinutes(at(4, 23, 0), at(5, 5, 0), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 60, got)
}

func TestRemaining_FixedZoneMatchesLocation(t *testing.T) {
	cal, err := NewCalendarInZone(officeConfig(), FixedZone(5*time.Hour))
	require.NoError(t, err)

	leaves := []Leave{{Start: at(5, 7, 0), End: at(5, 8, 0)}}
	assert.Equal(t, 420, cal.Remaining(at(5, 4, 0), at(5, 12, 0), leaves))
}

func TestRemaining_InvalidConfiguration(t *testing.T) {
	cases := map[string]func(*Config){
		"bad start":        func(c *Config) { c.StartTime = "9:00" },
		"bad end":          func(c *Config) { c.EndTime = "24:00" },
		"bad saturday":     func(c *Config) { c.SaturdayEndTime = "ab:cd" },
		"unknown zone":     func(c *Config) { c.Timezone = "Mars/Olympus" },
		"empty zone":       func(c *Config) { c.Timezone = "" },
		"day out of range": func(c *Config) { c.WorkingDays = []int{0, 8} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := officeConfig()
			mutate(&cfg)

			_, err := RemainingWorkingMinutes(at(5, 9, 0), at(5, 17, 0), cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidCalendar)

			_, err = OverdueWorkingMinutes(at(5, 17, 0), at(5, 9, 0), cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidCalendar)
		})
	}
}
