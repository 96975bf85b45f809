package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/worktime"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Calendar errors
	case errors.Is(err, worktime.ErrInvalidCalendar):
		ValidationError(w, map[string]string{"calendar": err.Error()})
	case errors.Is(err, schedule.ErrCalendarNotFound):
		NotFound(w, "Calendar not found")

	// Task errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")

	// Token errors
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaim):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, jwt.ErrAccessDenied):
		Forbidden(w, "Access denied")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
