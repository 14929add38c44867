package timesheet

import "context"

// BaseRepository stores the raw punch rows loaded from the punch workbook.
// The table is rebuilt from scratch on every pipeline run.
type BaseRepository interface {
	// Reset drops and recreates the base table.
	Reset(ctx context.Context) error

	// BulkInsert writes all ingested rows.
	BulkInsert(ctx context.Context, rows []BaseRow) error

	// List returns every base row.
	List(ctx context.Context) ([]BaseRow, error)
}

// ResultRepository stores the composed day statuses. Day cells are the unit
// of work for the overlay stages: each overlay reads a cell and writes it
// back inside one transaction.
type ResultRepository interface {
	// Reset drops and recreates the result table.
	Reset(ctx context.Context) error

	// Insert writes one employee's result row.
	Insert(ctx context.Context, row ResultRow) error

	// List returns every result row.
	List(ctx context.Context) ([]ResultRow, error)

	// GetDay reads one day cell by exact employee name. The second return
	// is false when no row matches.
	GetDay(ctx context.Context, name string, day int) (string, bool, error)

	// SetDay writes one day cell by exact employee name.
	SetDay(ctx context.Context, name string, day int, value string) error

	// GetDayByPrefix reads one day cell matching employees whose name
	// starts with prefix. Used by the leave overlay only; see the overlay
	// service for why the two match rules differ.
	GetDayByPrefix(ctx context.Context, prefix string, day int) (string, bool, error)

	// SetDayByPrefix writes one day cell by employee-name prefix.
	SetDayByPrefix(ctx context.Context, prefix string, day int, value string) error
}
