package worktime

import (
	"fmt"
	"time"
)

// Zone converts an absolute instant into naive local wall-clock time.
//
// The returned value carries the local calendar fields in time.UTC, so that
// all later arithmetic is plain wall-clock arithmetic with no further
// timezone lookups.
type Zone interface {
	Local(t time.Time) time.Time
}

type locationZone struct {
	loc *time.Location
}

// LoadZone resolves an IANA timezone name through the timezone database.
func LoadZone(name string) (Zone, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: timezone is required", ErrInvalidCalendar)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidCalendar, name)
	}
	return locationZone{loc: loc}, nil
}

func (z locationZone) Local(t time.Time) time.Time {
	return naive(t.In(z.loc))
}

// FixedZone returns a Zone with a constant UTC offset. Useful where no
// timezone database is available.
func FixedZone(offset time.Duration) Zone {
	return fixedZone(offset)
}

type fixedZone time.Duration

func (z fixedZone) Local(t time.Time) time.Time {
	return naive(t.UTC().Add(time.Duration(z)))
}

func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
