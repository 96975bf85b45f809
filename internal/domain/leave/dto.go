package leave

import (
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/worktime"
)

// LeaveRequest is the JSON shape of a leave interval supplied by a caller.
type LeaveRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseLeaves validates every interval and converts them for the calculator.
func ParseLeaves(reqs []LeaveRequest) ([]worktime.Leave, error) {
	var errs validator.ValidationErrors
	leaves := make([]worktime.Leave, 0, len(reqs))

	for i, r := range reqs {
		start, okStart := validator.IsValidDateTime(r.Start)
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("leaves[%d].start", i),
				Message: "start must be an ISO 8601 timestamp",
			})
		}
		end, okEnd := validator.IsValidDateTime(r.End)
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("leaves[%d].end", i),
				Message: "end must be an ISO 8601 timestamp",
			})
		}
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("leaves[%d].end", i),
				Message: "end must not be before start",
			})
		}
		leaves = append(leaves, worktime.Leave{Start: start, End: end})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return leaves, nil
}
