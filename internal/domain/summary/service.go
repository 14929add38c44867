package summary

import (
	"context"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
)

// Service computes monthly aggregates and display formatting from the final
// result rows. Read-only; safe to run in parallel across employees.
type Service interface {
	// BuildReports aggregates every employee's month and formats each day
	// cell for display.
	BuildReports(ctx context.Context, cal calendar.Calendar) ([]EmployeeReport, error)
}
