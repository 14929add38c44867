package response

import (
	"errors"
	"net/http"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/event"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/pipeline"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/validator"
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
	// Pipeline domain errors
	case errors.Is(err, pipeline.ErrRunInProgress):
		Conflict(w, "A pipeline run is already in progress")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrCalendarNotFound):
		NotFound(w, "Rest calendar not configured")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, timesheet.ErrInvalidDay):
		BadRequest(w, "Day is outside the month", nil)

	// Ingestion errors
	case errors.Is(err, event.ErrMissingColumns):
		BadRequest(w, "Workbook is missing required columns", nil)
	case errors.Is(err, event.ErrBadDateRange):
		BadRequest(w, "Record has an invalid date range", nil)
	case errors.Is(err, event.ErrBadDuration):
		BadRequest(w, "Record has an invalid duration", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
