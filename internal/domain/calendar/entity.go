package calendar

import "time"

// Calendar is the rest-day policy for the active month. It is loaded once
// at the start of a pipeline run and treated as immutable for the rest of
// the run so classification stays deterministic.
type Calendar struct {
	Year     int
	Month    time.Month
	RestDays map[int]bool
}

// IsRestDay reports whether a 1-based day of month is a rest day.
func (c Calendar) IsRestDay(day int) bool {
	return c.RestDays[day]
}

// DaysInMonth returns the number of calendar days in the active month.
func (c Calendar) DaysInMonth() int {
	return time.Date(c.Year, c.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WorkingDays returns the expected attendance days: days in the month minus
// rest days. Rest days past the end of the month are ignored so a stale
// 31-day configuration cannot deflate a shorter month.
func (c Calendar) WorkingDays() int {
	days := c.DaysInMonth()
	rest := 0
	for day := 1; day <= days; day++ {
		if c.RestDays[day] {
			rest++
		}
	}
	return days - rest
}
