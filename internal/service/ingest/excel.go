package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/event"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
)

// sheetRows reads every row of a workbook's first sheet.
func sheetRows(f *excelize.File) ([][]string, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet rows: %w", err)
	}
	return rows, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseEventDate extracts the calendar date from an event timestamp cell.
// Both origins prefix the cell with an ISO date; whatever follows the first
// space (a clock time, or a morning/afternoon half marker) is dropped.
func parseEventDate(cell string) (time.Time, error) {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", event.ErrBadDateRange)
	}
	t, err := time.Parse("2006-01-02", fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", event.ErrBadDateRange, cell)
	}
	return t, nil
}

// eventLayout describes one origin system's export format for one event
// category: where the header row sits, what the columns are called, and
// which literal approval value marks a record as accepted.
type eventLayout struct {
	source    status.Source
	headerRow int // 1-based row holding the column names

	nameHeader     string
	startHeader    string
	endHeader      string
	durationHeader string
	reasonHeader   string
	approvalHeader string

	approvedLiteral string
}

// eventRow is a raw accepted record before category-specific normalization.
type eventRow struct {
	Name     string
	Start    string
	End      string
	Duration string
	Reason   string
	Source   status.Source
}

// parseEventSheet extracts the approval-filtered records from one origin's
// workbook. Records in any other approval state are discarded here and are
// not counted as skips; they were never supposed to reach the core.
func parseEventSheet(f *excelize.File, layout eventLayout) ([]eventRow, error) {
	rows, err := sheetRows(f)
	if err != nil {
		return nil, err
	}
	if len(rows) < layout.headerRow {
		return nil, fmt.Errorf("%w: sheet has no header row", event.ErrMissingColumns)
	}

	header := rows[layout.headerRow-1]
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	required := []string{
		layout.nameHeader, layout.startHeader, layout.endHeader,
		layout.durationHeader, layout.reasonHeader, layout.approvalHeader,
	}
	for _, name := range required {
		if _, ok := colIdx[name]; !ok {
			return nil, fmt.Errorf("%w: %q (source %s)", event.ErrMissingColumns, name, layout.source)
		}
	}

	var records []eventRow
	for _, row := range rows[layout.headerRow:] {
		if isBlankRow(row) {
			continue
		}
		if cellAt(row, colIdx[layout.approvalHeader]) != layout.approvedLiteral {
			continue
		}
		records = append(records, eventRow{
			Name:     cellAt(row, colIdx[layout.nameHeader]),
			Start:    cellAt(row, colIdx[layout.startHeader]),
			End:      cellAt(row, colIdx[layout.endHeader]),
			Duration: cellAt(row, colIdx[layout.durationHeader]),
			Reason:   cellAt(row, colIdx[layout.reasonHeader]),
			Source:   layout.source,
		})
	}
	return records, nil
}
