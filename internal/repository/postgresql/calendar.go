package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable reports whether err is PostgreSQL's undefined_table
// error, SQLSTATE 42P01.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

type calendarRepository struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.Repository {
	return &calendarRepository{db: db}
}

// Get implements calendar.Repository. There is exactly one active calendar
// row; a pipeline run snapshots it once and never re-reads it mid-run.
func (r *calendarRepository) Get(ctx context.Context) (calendar.Calendar, error) {
	q := GetQuerier(ctx, r.db)

	var (
		year, month int
		restDays    []int
	)
	err := q.QueryRow(ctx, `
		SELECT year, month, rest_days
		FROM rest_calendar
		ORDER BY updated_at DESC
		LIMIT 1
	`).Scan(&year, &month, &restDays)
	if err != nil {
		// The table is created lazily by Put; reading before the first
		// Put is the same as having no calendar.
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return calendar.Calendar{}, calendar.ErrCalendarNotFound
		}
		return calendar.Calendar{}, fmt.Errorf("failed to get rest calendar: %w", err)
	}

	rest := make(map[int]bool, len(restDays))
	for _, day := range restDays {
		rest[day] = true
	}
	return calendar.Calendar{
		Year:     year,
		Month:    time.Month(month),
		RestDays: rest,
	}, nil
}

// Put implements calendar.Repository.
func (r *calendarRepository) Put(ctx context.Context, cal calendar.Calendar) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS rest_calendar (
			year INT NOT NULL,
			month INT NOT NULL,
			rest_days INT[] NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("failed to ensure rest calendar table: %w", err)
	}

	restDays := make([]int, 0, len(cal.RestDays))
	for day := 1; day <= 31; day++ {
		if cal.RestDays[day] {
			restDays = append(restDays, day)
		}
	}

	// Single-row table: replace rather than accumulate history.
	if _, err := q.Exec(ctx, "DELETE FROM rest_calendar"); err != nil {
		return fmt.Errorf("failed to clear rest calendar: %w", err)
	}
	if _, err := q.Exec(ctx, `
		INSERT INTO rest_calendar (year, month, rest_days, updated_at)
		VALUES ($1, $2, $3, NOW())
	`, cal.Year, int(cal.Month), restDays); err != nil {
		return fmt.Errorf("failed to store rest calendar: %w", err)
	}
	return nil
}
