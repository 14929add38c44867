// Package overlay implements the three merge stages that layer approved
// events onto the classified day statuses. The stages run strictly in
// order (trip, then leave, then overtime): trips overwrite the cell, leave
// and overtime append, so later stages depend on earlier writes being
// committed and visible.
package overlay

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/database"
)

// txRunner wraps a unit of overlay work in a transaction. It is a field on
// each overlay so tests can run against in-memory repositories.
type txRunner func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error

// dayRange converts an event's timestamp range to 1-based days of month,
// clamped to the active month. ok is false when the range misses the month
// entirely.
func dayRange(cal calendar.Calendar, start, end time.Time) (startDay, endDay int, ok bool) {
	first := time.Date(cal.Year, cal.Month, 1, 0, 0, 0, 0, start.Location())
	last := time.Date(cal.Year, cal.Month, cal.DaysInMonth(), 23, 59, 59, 0, start.Location())

	if end.Before(first) || start.After(last) {
		return 0, 0, false
	}
	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}
	return start.Day(), end.Day(), true
}
