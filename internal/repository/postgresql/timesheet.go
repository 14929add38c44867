package postgresql

import (
	"fmt"
	"strings"

	"context"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/database"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

const identityColumns = "name, work_group, department, employee_no, position, external_user_id"

// dayColumn maps a 1-based day of month to its column name. Day columns are
// interpolated into SQL, so the bounds check here is load-bearing.
func dayColumn(day int) (string, error) {
	if !validator.IsValidDayOfMonth(day) {
		return "", fmt.Errorf("%w: %d", timesheet.ErrInvalidDay, day)
	}
	return fmt.Sprintf("day_%02d", day), nil
}

func allDayColumns() []string {
	cols := make([]string, 0, timesheet.MaxDays)
	for day := 1; day <= timesheet.MaxDays; day++ {
		col, _ := dayColumn(day)
		cols = append(cols, col)
	}
	return cols
}

func allColumns() string {
	return identityColumns + ", " + strings.Join(allDayColumns(), ", ")
}

func createWideTableSQL(table string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE " + table + " (")
	b.WriteString("name TEXT NOT NULL, work_group TEXT, department TEXT, ")
	b.WriteString("employee_no TEXT, position TEXT, external_user_id TEXT")
	for _, col := range allDayColumns() {
		b.WriteString(", " + col + " TEXT NOT NULL DEFAULT ''")
	}
	b.WriteString(")")
	return b.String()
}

func insertWideRowSQL(table string) string {
	placeholders := make([]string, 6+timesheet.MaxDays)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO " + table + " (" + allColumns() + ") VALUES (" +
		strings.Join(placeholders, ", ") + ")"
}

func wideRowArgs(emp timesheet.Employee, days [timesheet.MaxDays]string) []interface{} {
	args := make([]interface{}, 0, 6+timesheet.MaxDays)
	args = append(args, emp.Name, emp.Group, emp.Department, emp.EmployeeNo, emp.Position, emp.ExternalUserID)
	for _, cell := range days {
		args = append(args, cell)
	}
	return args
}

func scanWideRow(row pgx.Rows) (timesheet.Employee, [timesheet.MaxDays]string, error) {
	var emp timesheet.Employee
	var days [timesheet.MaxDays]string

	dest := make([]interface{}, 0, 6+timesheet.MaxDays)
	dest = append(dest, &emp.Name, &emp.Group, &emp.Department, &emp.EmployeeNo, &emp.Position, &emp.ExternalUserID)
	for i := range days {
		dest = append(dest, &days[i])
	}
	if err := row.Scan(dest...); err != nil {
		return emp, days, err
	}
	return emp, days, nil
}

// ---------------------------------------------------------------------------
// Base rows (raw punch cells)
// ---------------------------------------------------------------------------

type baseRepository struct {
	db *database.DB
}

func NewBaseRepository(db *database.DB) timesheet.BaseRepository {
	return &baseRepository{db: db}
}

// Reset implements timesheet.BaseRepository. The base table is rebuilt from
// the punch workbook on every run, matching the drop-and-reload model of
// the upstream exports.
func (r *baseRepository) Reset(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, "DROP TABLE IF EXISTS timesheet_base"); err != nil {
		return fmt.Errorf("failed to drop base table: %w", err)
	}
	if _, err := q.Exec(ctx, createWideTableSQL("timesheet_base")); err != nil {
		return fmt.Errorf("failed to create base table: %w", err)
	}
	return nil
}

// BulkInsert implements timesheet.BaseRepository.
func (r *baseRepository) BulkInsert(ctx context.Context, rows []timesheet.BaseRow) error {
	q := GetQuerier(ctx, r.db)

	query := insertWideRowSQL("timesheet_base")
	for _, row := range rows {
		if _, err := q.Exec(ctx, query, wideRowArgs(row.Employee, row.Days)...); err != nil {
			return fmt.Errorf("failed to insert base row for %q: %w", row.Name, err)
		}
	}
	return nil
}

// List implements timesheet.BaseRepository.
func (r *baseRepository) List(ctx context.Context) ([]timesheet.BaseRow, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+allColumns()+" FROM timesheet_base")
	if err != nil {
		return nil, fmt.Errorf("failed to query base rows: %w", err)
	}
	defer rows.Close()

	var result []timesheet.BaseRow
	for rows.Next() {
		emp, days, err := scanWideRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan base row: %w", err)
		}
		result = append(result, timesheet.BaseRow{Employee: emp, Days: days})
	}
	return result, rows.Err()
}

// ---------------------------------------------------------------------------
// Result rows (composed statuses)
// ---------------------------------------------------------------------------

type resultRepository struct {
	db *database.DB
}

func NewResultRepository(db *database.DB) timesheet.ResultRepository {
	return &resultRepository{db: db}
}

// Reset implements timesheet.ResultRepository.
func (r *resultRepository) Reset(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, "DROP TABLE IF EXISTS attendance_result"); err != nil {
		return fmt.Errorf("failed to drop result table: %w", err)
	}
	if _, err := q.Exec(ctx, createWideTableSQL("attendance_result")); err != nil {
		return fmt.Errorf("failed to create result table: %w", err)
	}
	return nil
}

// Insert implements timesheet.ResultRepository.
func (r *resultRepository) Insert(ctx context.Context, row timesheet.ResultRow) error {
	q := GetQuerier(ctx, r.db)

	query := insertWideRowSQL("attendance_result")
	if _, err := q.Exec(ctx, query, wideRowArgs(row.Employee, row.Days)...); err != nil {
		return fmt.Errorf("failed to insert result row for %q: %w", row.Name, err)
	}
	return nil
}

// List implements timesheet.ResultRepository.
func (r *resultRepository) List(ctx context.Context) ([]timesheet.ResultRow, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+allColumns()+" FROM attendance_result ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query result rows: %w", err)
	}
	defer rows.Close()

	var result []timesheet.ResultRow
	for rows.Next() {
		emp, days, err := scanWideRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		result = append(result, timesheet.ResultRow{Employee: emp, Days: days})
	}
	return result, rows.Err()
}

// GetDay implements timesheet.ResultRepository.
func (r *resultRepository) GetDay(ctx context.Context, name string, day int) (string, bool, error) {
	col, err := dayColumn(day)
	if err != nil {
		return "", false, err
	}
	q := GetQuerier(ctx, r.db)

	var value string
	err = q.QueryRow(ctx, "SELECT "+col+" FROM attendance_result WHERE name = $1 LIMIT 1", name).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read day cell: %w", err)
	}
	return value, true, nil
}

// SetDay implements timesheet.ResultRepository.
func (r *resultRepository) SetDay(ctx context.Context, name string, day int, value string) error {
	col, err := dayColumn(day)
	if err != nil {
		return err
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "UPDATE attendance_result SET "+col+" = $1 WHERE name = $2", value, name)
	if err != nil {
		return fmt.Errorf("failed to write day cell: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEmployeeNotFound
	}
	return nil
}

// GetDayByPrefix implements timesheet.ResultRepository.
func (r *resultRepository) GetDayByPrefix(ctx context.Context, prefix string, day int) (string, bool, error) {
	col, err := dayColumn(day)
	if err != nil {
		return "", false, err
	}
	q := GetQuerier(ctx, r.db)

	var value string
	err = q.QueryRow(ctx, "SELECT "+col+" FROM attendance_result WHERE name LIKE $1 || '%' LIMIT 1", prefix).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read day cell by prefix: %w", err)
	}
	return value, true, nil
}

// SetDayByPrefix implements timesheet.ResultRepository.
func (r *resultRepository) SetDayByPrefix(ctx context.Context, prefix string, day int, value string) error {
	col, err := dayColumn(day)
	if err != nil {
		return err
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "UPDATE attendance_result SET "+col+" = $1 WHERE name LIKE $2 || '%'", value, prefix)
	if err != nil {
		return fmt.Errorf("failed to write day cell by prefix: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEmployeeNotFound
	}
	return nil
}
