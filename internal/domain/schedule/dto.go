package schedule

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// CalendarRequest is the JSON shape of a calendar supplied by a caller.
type CalendarRequest struct {
	WorkingDays       []int   `json:"working_days"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	SaturdayStartTime *string `json:"saturday_start_time,omitempty"`
	SaturdayEndTime   *string `json:"saturday_end_time,omitempty"`
	Timezone          string  `json:"timezone"`
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, day := range r.WorkingDays {
		if day < 1 || day > 7 {
			errs = append(errs, validator.ValidationError{
				Field:   "calendar.working_days",
				Message: fmt.Sprintf("working day %d must be between 1 (Monday) and 7 (Sunday)", day),
			})
			break
		}
	}

	clocks := []struct {
		field string
		value *string
		req   bool
	}{
		{"calendar.start_time", &r.StartTime, true},
		{"calendar.end_time", &r.EndTime, true},
		{"calendar.saturday_start_time", r.SaturdayStartTime, false},
		{"calendar.saturday_end_time", r.SaturdayEndTime, false},
	}
	for _, c := range clocks {
		if c.value == nil || validator.IsEmpty(*c.value) {
			if c.req {
				errs = append(errs, validator.ValidationError{
					Field:   c.field,
					Message: strings.TrimPrefix(c.field, "calendar.") + " is required",
				})
			}
			continue
		}
		if !validator.IsValidClock(*c.value) {
			errs = append(errs, validator.ValidationError{
				Field:   c.field,
				Message: "must be in HH:MM format",
			})
		}
	}

	if validator.IsEmpty(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "calendar.timezone",
			Message: "timezone is required",
		})
	} else if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "calendar.timezone",
			Message: "timezone must be a valid IANA name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity maps the request onto a transient CalendarConfig.
func (r CalendarRequest) ToEntity() CalendarConfig {
	return CalendarConfig{
		WorkingDays:       r.WorkingDays,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		SaturdayStartTime: r.SaturdayStartTime,
		SaturdayEndTime:   r.SaturdayEndTime,
		Timezone:          r.Timezone,
	}
}

// CalendarResponse describes a calendar. IsOvernight covers the standard
// window, IsSaturdayOvernight the effective Saturday window.
type CalendarResponse struct {
	ID                  string  `json:"id,omitempty"`
	DeveloperID         string  `json:"developer_id"`
	WorkingDays         []int   `json:"working_days"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	SaturdayStartTime   *string `json:"saturday_start_time,omitempty"`
	SaturdayEndTime     *string `json:"saturday_end_time,omitempty"`
	Timezone            string  `json:"timezone"`
	IsOvernight         bool    `json:"is_overnight"`
	IsSaturdayOvernight bool    `json:"is_saturday_overnight"`
	IsDefault           bool    `json:"is_default"`
	UpdatedAt           *string `json:"updated_at,omitempty"`
}
