package timesheet

// MaxDays is the number of day columns carried per row. Months with fewer
// days simply leave the tail columns empty.
const MaxDays = 31

// Employee carries the identity columns from the punch workbook. Only Name
// participates in matching; the rest is passed through to the report.
type Employee struct {
	Name           string
	Group          string
	Department     string
	EmployeeNo     string
	Position       string
	ExternalUserID string
}

// BaseRow is one employee's raw punch cells for the month, one free-text
// cell per calendar day.
type BaseRow struct {
	Employee
	Days [MaxDays]string
}

// ResultRow is one employee's composed day statuses. Cells are written by
// the classifier and rewritten or appended to by the overlay stages.
type ResultRow struct {
	Employee
	Days [MaxDays]string
}

// Day returns the cell for a 1-based day of month.
func (r *ResultRow) Day(day int) string {
	return r.Days[day-1]
}

// SetDay overwrites the cell for a 1-based day of month.
func (r *ResultRow) SetDay(day int, value string) {
	r.Days[day-1] = value
}
