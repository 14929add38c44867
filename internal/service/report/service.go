package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/summary"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
)

// Service renders the finished month into a styled workbook in the output
// directory. Rendering is pure presentation; all numbers come from the
// summary stage.
type Service struct {
	outputDir string
}

func NewService(outputDir string) *Service {
	return &Service{outputDir: outputDir}
}

const (
	identityColCount = 6
	dayColWidth      = 40.0
)

var identityHeaders = [identityColCount]string{
	"Name", "Work Group", "Department", "Employee No", "Position", "User ID",
}

var summaryHeaders = []string{
	"Expected Days",
	"Actual Days",
	"Normal",
	"Late",
	"Early Leave",
	"Missing Punch",
	"Absent",
	"Business Trip",
	"Leave",
	"Overtime origin-A (h)",
	"Overtime origin-B (h)",
	"Overtime Total (h)",
}

// Render writes the monthly report workbook and returns its file name.
func (s *Service) Render(reports []summary.EmployeeReport, cal calendar.Calendar) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	days := cal.DaysInMonth()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#D9D9D9", Style: 1},
			{Type: "right", Color: "#D9D9D9", Style: 1},
			{Type: "bottom", Color: "#D9D9D9", Style: 1},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build cell style: %w", err)
	}

	// Header row: identity, one column per calendar day, then the summary
	// columns.
	col := 1
	for _, h := range identityHeaders {
		setCell(f, sheet, col, 1, h)
		col++
	}
	firstDayCol := col
	for day := 1; day <= days; day++ {
		setCell(f, sheet, col, 1, fmt.Sprintf("%02d", day))
		col++
	}
	for _, h := range summaryHeaders {
		setCell(f, sheet, col, 1, h)
		col++
	}
	lastCol := col - 1

	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(lastCol, 1)
	f.SetCellStyle(sheet, first, last, headerStyle)

	// Day cells carry multi-line statuses; give them room.
	startName, _ := excelize.ColumnNumberToName(firstDayCol)
	endName, _ := excelize.ColumnNumberToName(firstDayCol + days - 1)
	f.SetColWidth(sheet, startName, endName, dayColWidth)
	idStart, _ := excelize.ColumnNumberToName(1)
	idEnd, _ := excelize.ColumnNumberToName(identityColCount)
	f.SetColWidth(sheet, idStart, idEnd, 16)

	for i, rep := range reports {
		row := i + 2
		writeEmployee(f, sheet, row, rep.Row.Employee)

		col = firstDayCol
		for day := 1; day <= days; day++ {
			setCell(f, sheet, col, row, rep.FormattedDays[day-1])
			col++
		}

		sum := rep.Summary
		for _, v := range []any{
			sum.ExpectedWorkingDays,
			sum.ActualAttendance,
			sum.Normal,
			sum.Late,
			sum.EarlyLeave,
			sum.MissingPunch,
			sum.Absent,
			sum.BusinessTrip,
			sum.Leave,
			sum.OvertimeOriginA.InexactFloat64(),
			sum.OvertimeOriginB.InexactFloat64(),
			sum.OvertimeTotal.InexactFloat64(),
		} {
			setCell(f, sheet, col, row, v)
			col++
		}

		rowFirst, _ := excelize.CoordinatesToCellName(1, row)
		rowLast, _ := excelize.CoordinatesToCellName(lastCol, row)
		f.SetCellStyle(sheet, rowFirst, rowLast, cellStyle)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})

	name := fmt.Sprintf("attendance_%04d-%02d_%s.xlsx",
		cal.Year, cal.Month, time.Now().Format("20060102150405"))
	if err := f.SaveAs(filepath.Join(s.outputDir, name)); err != nil {
		return "", fmt.Errorf("failed to write report workbook: %w", err)
	}
	return name, nil
}

func writeEmployee(f *excelize.File, sheet string, row int, e timesheet.Employee) {
	for i, v := range []string{e.Name, e.Group, e.Department, e.EmployeeNo, e.Position, e.ExternalUserID} {
		setCell(f, sheet, i+1, row, v)
	}
}

func setCell(f *excelize.File, sheet string, col, row int, value any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellValue(sheet, cell, value)
}
