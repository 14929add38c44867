package summary

import (
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// MonthlySummary is the per-employee monthly projection. It is recomputed
// from the final day statuses on every run and never stored back.
type MonthlySummary struct {
	Employee timesheet.Employee

	Normal       int
	Late         int
	EarlyLeave   int
	MissingPunch int
	Absent       int
	BusinessTrip int
	Leave        int

	OvertimeOriginA decimal.Decimal
	OvertimeOriginB decimal.Decimal
	OvertimeTotal   decimal.Decimal

	ExpectedWorkingDays int
	ActualAttendance    int
}

// EmployeeReport pairs a result row with its summary and the display-ready
// day cells for the report sheet.
type EmployeeReport struct {
	Row           timesheet.ResultRow
	FormattedDays [timesheet.MaxDays]string
	Summary       MonthlySummary
}
