package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
)

func juneCalendar() calendar.Calendar {
	return calendar.Calendar{
		Year:     2025,
		Month:    time.June,
		RestDays: map[int]bool{1: true, 7: true, 8: true, 14: true, 15: true, 21: true, 22: true, 28: true, 29: true},
	}
}

func TestAggregateCounters(t *testing.T) {
	cal := juneCalendar()

	row := timesheet.ResultRow{}
	row.Name = "Alice"
	row.SetDay(2, "normal(08:20, 18:10)")
	row.SetDay(3, "late(08:40, 18:10)")
	row.SetDay(4, "late+early-leave(08:40, 17:00)")
	row.SetDay(5, "missing-punch(1 day) 09:10")
	row.SetDay(6, "absent-half(0.5 day)(09:10, 17:00)")
	row.SetDay(9, "absent-full(1 day)(12:00, 18:10)")
	row.SetDay(10, "business-trip(client visit)")
	row.SetDay(11, "normal(08:20, 18:10)\norigin-A-leave(1 day)(sick)")

	agg := Aggregate(row, cal)

	assert.Equal(t, 2, agg.Normal)
	assert.Equal(t, 2, agg.Late)
	assert.Equal(t, 1, agg.EarlyLeave)
	assert.Equal(t, 1, agg.MissingPunch)
	assert.Equal(t, 2, agg.Absent)
	assert.Equal(t, 1, agg.BusinessTrip)
	assert.Equal(t, 1, agg.Leave)

	// 30 days in June, 9 rest days.
	assert.Equal(t, 21, agg.ExpectedWorkingDays)
	assert.Equal(t, 20, agg.ActualAttendance)
}

func TestAggregateLeaveExcludedOnRestDays(t *testing.T) {
	cal := juneCalendar()

	row := timesheet.ResultRow{}
	row.Name = "Bob"
	// Day 7 is a rest day; a leave note landing there is not counted.
	row.SetDay(7, "origin-B-leave(1 day)(errand)")
	row.SetDay(9, "origin-B-leave(1 day)(errand)")

	agg := Aggregate(row, cal)
	assert.Equal(t, 1, agg.Leave)
}

func TestAggregateOvertimeSums(t *testing.T) {
	cal := juneCalendar()

	row := timesheet.ResultRow{}
	row.Name = "Cara"
	row.SetDay(2, "normal(08:20, 18:10) + origin-Aovertime(2h)")
	row.SetDay(3, "normal(08:20, 18:10) + origin-Aovertime(0.5h) + origin-Bovertime(1.5h)")

	agg := Aggregate(row, cal)

	assert.True(t, decimal.NewFromFloat(2.5).Equal(agg.OvertimeOriginA), agg.OvertimeOriginA.String())
	assert.True(t, decimal.NewFromFloat(1.5).Equal(agg.OvertimeOriginB), agg.OvertimeOriginB.String())
	// The combined total always equals the per-source totals exactly.
	assert.True(t, agg.OvertimeOriginA.Add(agg.OvertimeOriginB).Equal(agg.OvertimeTotal))
}

func TestAggregateEmptyRow(t *testing.T) {
	cal := juneCalendar()
	agg := Aggregate(timesheet.ResultRow{}, cal)

	assert.Zero(t, agg.Normal)
	assert.Zero(t, agg.MissingPunch)
	assert.Equal(t, 21, agg.ExpectedWorkingDays)
	assert.Equal(t, 21, agg.ActualAttendance)
	assert.True(t, agg.OvertimeTotal.IsZero())
}
