package calendar

import "context"

// Repository persists the single active rest calendar.
type Repository interface {
	// Get returns the active calendar, or ErrCalendarNotFound.
	Get(ctx context.Context) (Calendar, error)

	// Put replaces the active calendar.
	Put(ctx context.Context, cal Calendar) error
}
