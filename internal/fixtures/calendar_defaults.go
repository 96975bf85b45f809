package fixtures

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
)

func strPtr(s string) *string { return &s }

// Agency office hours, used for developers without their own calendar.
const (
	DefaultStartTime         = "10:00"
	DefaultEndTime           = "19:00"
	DefaultSaturdayStartTime = "10:00"
	DefaultSaturdayEndTime   = "15:00"
)

// DefaultWorkingDays is Monday through Saturday.
var DefaultWorkingDays = []int{1, 2, 3, 4, 5, 6}

// DefaultCalendar returns the agency calendar for developerID in timezone.
func DefaultCalendar(developerID, timezone string) schedule.CalendarConfig {
	days := make([]int, len(DefaultWorkingDays))
	copy(days, DefaultWorkingDays)

	return schedule.CalendarConfig{
		DeveloperID:       developerID,
		WorkingDays:       days,
		StartTime:         DefaultStartTime,
		EndTime:           DefaultEndTime,
		SaturdayStartTime: strPtr(DefaultSaturdayStartTime),
		SaturdayEndTime:   strPtr(DefaultSaturdayEndTime),
		Timezone:          timezone,
	}
}
