package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/summary"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
)

func TestRender(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	cal := calendar.Calendar{Year: 2025, Month: time.June, RestDays: map[int]bool{1: true}}

	rep := summary.EmployeeReport{}
	rep.Row.Employee = timesheet.Employee{
		Name:       "Alice",
		Group:      "G1",
		Department: "Engineering",
		EmployeeNo: "E001",
		Position:   "Engineer",
	}
	rep.FormattedDays[1] = "✅ normal(08:20, 18:10)"
	rep.Summary = summary.MonthlySummary{
		Normal:              1,
		ExpectedWorkingDays: 29,
		ActualAttendance:    29,
		OvertimeOriginA:     decimal.NewFromFloat(2.5),
		OvertimeTotal:       decimal.NewFromFloat(2.5),
	}

	name, err := svc.Render([]summary.EmployeeReport{rep}, cal)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "attendance_2025-06_"), name)
	assert.True(t, strings.HasSuffix(name, ".xlsx"), name)

	f, err := excelize.OpenFile(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Attendance", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Name", get("A1"))
	assert.Equal(t, "01", get("G1"), "day columns start after identity")
	assert.Equal(t, "Alice", get("A2"))
	assert.Equal(t, "✅ normal(08:20, 18:10)", get("H2"), "day 2 cell")

	// June has 30 days, so the summary block starts at column AK
	// (6 identity + 30 day columns).
	assert.Equal(t, "Expected Days", get("AK1"))
	assert.Equal(t, "29", get("AK2"))
	assert.Equal(t, "Overtime origin-A (h)", get("AT1"))
	assert.Equal(t, "2.5", get("AT2"))
}

func TestRenderEmpty(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	cal := calendar.Calendar{Year: 2025, Month: time.February}
	name, err := svc.Render(nil, cal)
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
