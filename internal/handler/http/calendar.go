package http

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/handler/http/response"
)

type CalendarHandler interface {
	// Active rest calendar
	Get(w http.ResponseWriter, r *http.Request)

	// Replace the active rest calendar
	Update(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarRepo calendar.Repository
}

func NewCalendarHandler(calendarRepo calendar.Repository) CalendarHandler {
	return &calendarHandlerImpl{
		calendarRepo: calendarRepo,
	}
}

func toResponse(cal calendar.Calendar) calendar.Response {
	days := make([]int, 0, len(cal.RestDays))
	for day := range cal.RestDays {
		days = append(days, day)
	}
	sort.Ints(days)
	return calendar.Response{
		Year:     cal.Year,
		Month:    int(cal.Month),
		RestDays: days,
	}
}

// Get handles GET /calendar
func (h *calendarHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, err := h.calendarRepo.Get(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toResponse(cal))
}

// Update handles PUT /calendar
func (h *calendarHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req calendar.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	cal := req.ToCalendar()
	if err := h.calendarRepo.Put(ctx, cal); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "rest calendar updated", toResponse(cal))
}
