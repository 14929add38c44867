package postgresql

import (
	"context"
	"fmt"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/event"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/database"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
)

// The three event tables share a shape: employee name, start/end, reason,
// duration text, origin tag. They are dropped and reloaded from the source
// workbooks on every ingestion pass, already filtered to approved records.

type tripRepository struct {
	db *database.DB
}

func NewTripRepository(db *database.DB) event.TripRepository {
	return &tripRepository{db: db}
}

func resetEventTable(ctx context.Context, q database.Querier, table string) error {
	if _, err := q.Exec(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("failed to drop %s table: %w", table, err)
	}
	if _, err := q.Exec(ctx, `
		CREATE TABLE `+table+` (
			employee_name TEXT NOT NULL,
			start_at TIMESTAMPTZ NOT NULL,
			end_at TIMESTAMPTZ NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create %s table: %w", table, err)
	}
	return nil
}

// Reset implements event.TripRepository.
func (r *tripRepository) Reset(ctx context.Context) error {
	return resetEventTable(ctx, GetQuerier(ctx, r.db), "business_trips")
}

// BulkInsert implements event.TripRepository.
func (r *tripRepository) BulkInsert(ctx context.Context, events []event.TripEvent) error {
	q := GetQuerier(ctx, r.db)
	for _, ev := range events {
		if _, err := q.Exec(ctx, `
			INSERT INTO business_trips (employee_name, start_at, end_at, reason, duration, source)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, ev.EmployeeName, ev.Start, ev.End, ev.Reason, ev.Duration, string(ev.Source)); err != nil {
			return fmt.Errorf("failed to insert trip event for %q: %w", ev.EmployeeName, err)
		}
	}
	return nil
}

// List implements event.TripRepository. Ordered by employee and start time
// so overlay application is deterministic.
func (r *tripRepository) List(ctx context.Context) ([]event.TripEvent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_name, start_at, end_at, reason, duration, source
		FROM business_trips
		ORDER BY employee_name, start_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip events: %w", err)
	}
	defer rows.Close()

	var events []event.TripEvent
	for rows.Next() {
		var ev event.TripEvent
		var src string
		if err := rows.Scan(&ev.EmployeeName, &ev.Start, &ev.End, &ev.Reason, &ev.Duration, &src); err != nil {
			return nil, fmt.Errorf("failed to scan trip event: %w", err)
		}
		ev.Source = status.Source(src)
		events = append(events, ev)
	}
	return events, rows.Err()
}

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) event.LeaveRepository {
	return &leaveRepository{db: db}
}

// Reset implements event.LeaveRepository.
func (r *leaveRepository) Reset(ctx context.Context) error {
	return resetEventTable(ctx, GetQuerier(ctx, r.db), "leave_requests")
}

// BulkInsert implements event.LeaveRepository.
func (r *leaveRepository) BulkInsert(ctx context.Context, events []event.LeaveEvent) error {
	q := GetQuerier(ctx, r.db)
	for _, ev := range events {
		if _, err := q.Exec(ctx, `
			INSERT INTO leave_requests (employee_name, start_at, end_at, reason, duration, source)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, ev.EmployeeName, ev.Start, ev.End, ev.Reason, ev.Duration, string(ev.Source)); err != nil {
			return fmt.Errorf("failed to insert leave event for %q: %w", ev.EmployeeName, err)
		}
	}
	return nil
}

// List implements event.LeaveRepository.
func (r *leaveRepository) List(ctx context.Context) ([]event.LeaveEvent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_name, start_at, end_at, reason, duration, source
		FROM leave_requests
		ORDER BY employee_name, start_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave events: %w", err)
	}
	defer rows.Close()

	var events []event.LeaveEvent
	for rows.Next() {
		var ev event.LeaveEvent
		var src string
		if err := rows.Scan(&ev.EmployeeName, &ev.Start, &ev.End, &ev.Reason, &ev.Duration, &src); err != nil {
			return nil, fmt.Errorf("failed to scan leave event: %w", err)
		}
		ev.Source = status.Source(src)
		events = append(events, ev)
	}
	return events, rows.Err()
}

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) event.OvertimeRepository {
	return &overtimeRepository{db: db}
}

// Reset implements event.OvertimeRepository.
func (r *overtimeRepository) Reset(ctx context.Context) error {
	return resetEventTable(ctx, GetQuerier(ctx, r.db), "overtime_requests")
}

// BulkInsert implements event.OvertimeRepository.
func (r *overtimeRepository) BulkInsert(ctx context.Context, events []event.OvertimeEvent) error {
	q := GetQuerier(ctx, r.db)
	for _, ev := range events {
		if _, err := q.Exec(ctx, `
			INSERT INTO overtime_requests (employee_name, start_at, end_at, reason, duration, source)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, ev.EmployeeName, ev.Start, ev.End, ev.Reason, ev.DurationText, string(ev.Source)); err != nil {
			return fmt.Errorf("failed to insert overtime event for %q: %w", ev.EmployeeName, err)
		}
	}
	return nil
}

// List implements event.OvertimeRepository.
func (r *overtimeRepository) List(ctx context.Context) ([]event.OvertimeEvent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_name, start_at, end_at, reason, duration, source
		FROM overtime_requests
		ORDER BY employee_name, start_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query overtime events: %w", err)
	}
	defer rows.Close()

	var events []event.OvertimeEvent
	for rows.Next() {
		var ev event.OvertimeEvent
		var src string
		if err := rows.Scan(&ev.EmployeeName, &ev.Start, &ev.End, &ev.Reason, &ev.DurationText, &src); err != nil {
			return nil, fmt.Errorf("failed to scan overtime event: %w", err)
		}
		ev.Source = status.Source(src)
		events = append(events, ev)
	}
	return events, rows.Err()
}
