package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/deadline"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxComputeBodyBytes = 1 << 20

type DeadlineHandler interface {
	GetTaskDelay(w http.ResponseWriter, r *http.Request)
	GetAcknowledgement(w http.ResponseWriter, r *http.Request)
	ListDeveloperDelays(w http.ResponseWriter, r *http.Request)
	GetDeveloperCalendar(w http.ResponseWriter, r *http.Request)
	Compute(w http.ResponseWriter, r *http.Request)
}

type DeadlineHandlerImpl struct {
	deadlineService deadline.Service
	now             func() time.Time
}

func NewDeadlineHandler(deadlineService deadline.Service) DeadlineHandler {
	return &DeadlineHandlerImpl{
		deadlineService: deadlineService,
		now:             time.Now,
	}
}

// GetTaskDelay implements DeadlineHandler.
func (h *DeadlineHandlerImpl) GetTaskDelay(w http.ResponseWriter, r *http.Request) {
	taskID, now, err := h.parseIDAndNow(r, "taskID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.deadlineService.GetTaskDelay(r.Context(), taskID, now)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetAcknowledgement implements DeadlineHandler.
func (h *DeadlineHandlerImpl) GetAcknowledgement(w http.ResponseWriter, r *http.Request) {
	taskID, now, err := h.parseIDAndNow(r, "taskID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.deadlineService.GetAcknowledgementStatus(r.Context(), taskID, now)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// ListDeveloperDelays implements DeadlineHandler.
func (h *DeadlineHandlerImpl) ListDeveloperDelays(w http.ResponseWriter, r *http.Request) {
	developerID, now, err := h.parseIDAndNow(r, "developerID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	delays, err := h.deadlineService.ListDeveloperDelays(r.Context(), developerID, now)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, delays)
}

// GetDeveloperCalendar implements DeadlineHandler.
func (h *DeadlineHandlerImpl) GetDeveloperCalendar(w http.ResponseWriter, r *http.Request) {
	developerID := chi.URLParam(r, "developerID")
	if !validator.IsValidUUID(developerID) {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "developerID",
			Message: "developerID must be a valid UUID",
		}})
		return
	}

	calendar, err := h.deadlineService.GetEffectiveCalendar(r.Context(), developerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, calendar)
}

// Compute implements DeadlineHandler.
func (h *DeadlineHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req deadline.ComputeRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxComputeBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Compute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.deadlineService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Working time computed", result)
}

// parseIDAndNow reads the UUID path parameter param and the optional ?now
// override, which defaults to the current time.
func (h *DeadlineHandlerImpl) parseIDAndNow(r *http.Request, param string) (string, time.Time, error) {
	var errs validator.ValidationErrors

	id := chi.URLParam(r, param)
	if !validator.IsValidUUID(id) {
		errs = append(errs, validator.ValidationError{
			Field:   param,
			Message: param + " must be a valid UUID",
		})
	}

	now := h.now()
	if raw := r.URL.Query().Get("now"); raw != "" {
		parsed, ok := validator.IsValidDateTime(raw)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "now",
				Message: "now must be an ISO 8601 timestamp",
			})
		}
		now = parsed
	}

	if len(errs) > 0 {
		return "", time.Time{}, errs
	}
	return id, now, nil
}
