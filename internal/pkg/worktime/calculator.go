package worktime

import "time"

// MaxSweepIterations bounds the day-by-day sweep (about two years of days).
// When it is reached the partial sum accumulated so far is returned.
const MaxSweepIterations = 730

// RemainingWorkingMinutes returns the whole working minutes between now and
// deadline under cfg, excluding leaves. It is 0 when deadline <= now.
func RemainingWorkingMinutes(now, deadline time.Time, cfg Config, leaves []Leave) (int, error) {
	cal, err := NewCalendar(cfg)
	if err != nil {
		return 0, err
	}
	return cal.Remaining(now, deadline, leaves), nil
}

// OverdueWorkingMinutes returns the whole working minutes elapsed since
// deadline up to now. It is 0 when now <= deadline.
func OverdueWorkingMinutes(now, deadline time.Time, cfg Config, leaves []Leave) (int, error) {
	cal, err := NewCalendar(cfg)
	if err != nil {
		return 0, err
	}
	return cal.Overdue(now, deadline, leaves), nil
}

// Remaining counts working minutes in [now, deadline).
func (c *Calendar) Remaining(now, deadline time.Time, leaves []Leave) int {
	if !deadline.After(now) {
		return 0
	}
	return c.sweep(c.zone.Local(now), c.zone.Local(deadline), c.localLeaves(leaves))
}

// Overdue counts working minutes in [deadline, now). It is the same sweep as
// Remaining with the bounds swapped.
func (c *Calendar) Overdue(now, deadline time.Time, leaves []Leave) int {
	if !now.After(deadline) {
		return 0
	}
	return c.Remaining(deadline, now, leaves)
}

type span struct {
	start time.Time
	end   time.Time
}

func (c *Calendar) localLeaves(leaves []Leave) []span {
	if len(leaves) == 0 {
		return nil
	}
	spans := make([]span, 0, len(leaves))
	for _, l := range leaves {
		spans = append(spans, span{start: c.zone.Local(l.Start), end: c.zone.Local(l.End)})
	}
	return spans
}

// sweep walks naive local time from cursor to until one shift at a time.
func (c *Calendar) sweep(cursor, until time.Time, leaves []span) int {
	total := 0
	for i := 0; i < MaxSweepIterations && cursor.Before(until); i++ {
		shiftEnd, active := c.shiftAt(cursor)
		if !active {
			cursor = c.nextShiftStart(cursor)
			continue
		}

		effectiveEnd := earliest(until, shiftEnd)
		minutes := wholeMinutes(effectiveEnd.Sub(cursor))
		for _, l := range leaves {
			minutes -= overlapMinutes(cursor, effectiveEnd, l)
		}
		if minutes > 0 {
			total += minutes
		}

		if !until.After(shiftEnd) {
			break
		}
		cursor = c.resume(shiftEnd)
	}
	return total
}

// shiftAt reports whether t lies inside a shift and, if so, when that shift
// ends. The early-morning part of an overnight window belongs to the shift
// that started the evening before: it is active only when the previous day
// is a working day whose own window is overnight, and it ends at that
// window's end.
func (c *Calendar) shiftAt(t time.Time) (time.Time, bool) {
	tod := sinceMidnight(t)

	prev := ISOWeekday(t.AddDate(0, 0, -1))
	if c.workingDays[prev] {
		if w := c.ShiftWindowFor(prev); w.Overnight && tod < w.End.Duration() {
			return w.End.On(t), true
		}
	}

	day := ISOWeekday(t)
	if !c.workingDays[day] {
		return time.Time{}, false
	}

	w := c.ShiftWindowFor(day)
	switch {
	case tod < w.Start.Duration():
		return time.Time{}, false
	case w.Overnight:
		return w.End.On(t.AddDate(0, 0, 1)), true
	case tod < w.End.Duration():
		return w.End.On(t), true
	default:
		return time.Time{}, false
	}
}

// resume returns t when it lies inside a shift, else the next shift start.
func (c *Calendar) resume(t time.Time) time.Time {
	if _, active := c.shiftAt(t); active {
		return t
	}
	return c.nextShiftStart(t)
}

// nextShiftStart returns today's window start when today is a working day
// still before it, otherwise tomorrow's window start. A non-working tomorrow
// is skipped by the next step of the sweep.
func (c *Calendar) nextShiftStart(t time.Time) time.Time {
	day := ISOWeekday(t)
	if w := c.ShiftWindowFor(day); c.workingDays[day] && sinceMidnight(t) < w.Start.Duration() {
		return w.Start.On(t)
	}

	next := t.AddDate(0, 0, 1)
	return c.ShiftWindowFor(ISOWeekday(next)).Start.On(next)
}

func overlapMinutes(from, to time.Time, l span) int {
	start := latest(from, l.start)
	end := earliest(to, l.end)
	if !end.After(start) {
		return 0
	}
	return wholeMinutes(end.Sub(start))
}

func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
