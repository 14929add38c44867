package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
)

// The punch export carries three banner rows, then one row per employee:
// six identity columns followed by one free-text cell per calendar day.
const (
	punchSkipRows    = 3
	identityColCount = 6
)

// parsePunchSheet reads the punch workbook into base rows. Fully blank rows
// are dropped; rows wider than the identity plus 31 day columns are
// truncated, narrower rows leave the tail days empty.
func parsePunchSheet(f *excelize.File) ([]timesheet.BaseRow, error) {
	rows, err := sheetRows(f)
	if err != nil {
		return nil, err
	}
	if len(rows) <= punchSkipRows {
		return nil, fmt.Errorf("punch sheet has no data rows")
	}

	var result []timesheet.BaseRow
	for _, row := range rows[punchSkipRows:] {
		if isBlankRow(row) {
			continue
		}
		base := timesheet.BaseRow{
			Employee: timesheet.Employee{
				Name:           cellAt(row, 0),
				Group:          cellAt(row, 1),
				Department:     cellAt(row, 2),
				EmployeeNo:     cellAt(row, 3),
				Position:       cellAt(row, 4),
				ExternalUserID: cellAt(row, 5),
			},
		}
		for day := 1; day <= timesheet.MaxDays; day++ {
			base.Days[day-1] = cellAt(row, identityColCount+day-1)
		}
		result = append(result, base)
	}
	return result, nil
}
