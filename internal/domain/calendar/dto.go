package calendar

import (
	"fmt"
	"time"

	"github.com/attendly-hq/attendance-engine-go/internal/pkg/validator"
)

// UpdateRequest replaces the active month's rest-day configuration.
type UpdateRequest struct {
	Year     int   `json:"year"`
	Month    int   `json:"month"`
	RestDays []int `json:"rest_days"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}
	maxDay := 31
	if r.Month >= 1 && r.Month <= 12 {
		maxDay = time.Date(r.Year, time.Month(r.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	}
	for _, day := range r.RestDays {
		if day < 1 || day > maxDay {
			errs = append(errs, validator.ValidationError{
				Field:   "rest_days",
				Message: fmt.Sprintf("day %d is out of range for %04d-%02d", day, r.Year, r.Month),
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToCalendar converts the request into the domain entity.
func (r *UpdateRequest) ToCalendar() Calendar {
	rest := make(map[int]bool, len(r.RestDays))
	for _, day := range r.RestDays {
		rest[day] = true
	}
	return Calendar{
		Year:     r.Year,
		Month:    time.Month(r.Month),
		RestDays: rest,
	}
}

// Response is the JSON shape returned by the calendar endpoints.
type Response struct {
	Year     int   `json:"year"`
	Month    int   `json:"month"`
	RestDays []int `json:"rest_days"`
}
