package schedule

import "errors"

var (
	ErrCalendarNotFound = errors.New("calendar not found")
)
