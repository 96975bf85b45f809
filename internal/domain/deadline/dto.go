package deadline

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DelayStatusResponse struct {
	TaskID           string          `json:"task_id"`
	Title            string          `json:"title"`
	AssigneeID       string          `json:"assignee_id"`
	Status           string          `json:"status"`
	Deadline         string          `json:"deadline"`
	EvaluatedAt      string          `json:"evaluated_at"`
	RemainingMinutes int             `json:"remaining_minutes"`
	OverdueMinutes   int             `json:"overdue_minutes"`
	RemainingHours   decimal.Decimal `json:"remaining_hours"`
	OverdueHours     decimal.Decimal `json:"overdue_hours"`
	Label            string          `json:"label"` // "3h 20m left" / "1h 5m overdue"
	IsDelayed        bool            `json:"is_delayed"`
	CalendarDefault  bool            `json:"calendar_default"`
}

type ListDelayStatusResponse struct {
	DeveloperID  string                `json:"developer_id"`
	EvaluatedAt  string                `json:"evaluated_at"`
	TotalCount   int                   `json:"total_count"`
	DelayedCount int                   `json:"delayed_count"`
	Tasks        []DelayStatusResponse `json:"tasks"`
}

type AcknowledgementStatusResponse struct {
	TaskID           string  `json:"task_id"`
	AssigneeID       string  `json:"assignee_id"`
	AssignedAt       string  `json:"assigned_at"`
	AcknowledgedAt   *string `json:"acknowledged_at,omitempty"`
	IsAcknowledged   bool    `json:"is_acknowledged"`
	WorkingMinutes   int     `json:"working_minutes"`
	ThresholdMinutes int     `json:"threshold_minutes"`
	IsLate           bool    `json:"is_late"`
}

// ComputeRequest evaluates a calendar without touching any store.
type ComputeRequest struct {
	Now      string                   `json:"now"`
	Deadline string                   `json:"deadline"`
	Calendar schedule.CalendarRequest `json:"calendar"`
	Leaves   []leave.LeaveRequest     `json:"leaves"`
}

func (r *ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Now) {
		errs = append(errs, validator.ValidationError{
			Field:   "now",
			Message: "now is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.Now); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "now",
			Message: "now must be an ISO 8601 timestamp",
		})
	}
	if validator.IsEmpty(r.Deadline) {
		errs = append(errs, validator.ValidationError{
			Field:   "deadline",
			Message: "deadline is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.Deadline); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "deadline",
			Message: "deadline must be an ISO 8601 timestamp",
		})
	}

	if err := r.Calendar.Validate(); err != nil {
		if calErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, calErrs...)
		}
	}

	if _, err := leave.ParseLeaves(r.Leaves); err != nil {
		if leaveErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, leaveErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ComputeResponse struct {
	RemainingMinutes int             `json:"remaining_minutes"`
	OverdueMinutes   int             `json:"overdue_minutes"`
	RemainingHours   decimal.Decimal `json:"remaining_hours"`
	OverdueHours     decimal.Decimal `json:"overdue_hours"`
	IsDelayed        bool            `json:"is_delayed"`
}
