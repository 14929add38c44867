package postgresql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
)

func TestDayColumn(t *testing.T) {
	col, err := dayColumn(1)
	require.NoError(t, err)
	assert.Equal(t, "day_01", col)

	col, err = dayColumn(31)
	require.NoError(t, err)
	assert.Equal(t, "day_31", col)

	_, err = dayColumn(0)
	assert.ErrorIs(t, err, timesheet.ErrInvalidDay)
	_, err = dayColumn(32)
	assert.ErrorIs(t, err, timesheet.ErrInvalidDay)
}

func TestInsertWideRowSQL(t *testing.T) {
	sql := insertWideRowSQL("timesheet_base")
	assert.True(t, strings.HasPrefix(sql, "INSERT INTO timesheet_base (name, work_group"))
	assert.Contains(t, sql, "day_01")
	assert.Contains(t, sql, "day_31")
	assert.Contains(t, sql, "$37", "six identity columns plus 31 day columns")
	assert.NotContains(t, sql, "$38")
}

func TestWideRowArgsRoundTrip(t *testing.T) {
	emp := timesheet.Employee{Name: "Alice", Group: "G1"}
	var days [timesheet.MaxDays]string
	days[0] = "08:20 18:10"

	args := wideRowArgs(emp, days)
	require.Len(t, args, 37)
	assert.Equal(t, "Alice", args[0])
	assert.Equal(t, "08:20 18:10", args[6])
	assert.Equal(t, "", args[36])
}
