package summary

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/summary"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
)

// ServiceImpl is the read-only aggregation stage. It never writes back: the
// monthly numbers are a projection of the result rows, recomputed from
// scratch on every run.
type ServiceImpl struct {
	resultRepo timesheet.ResultRepository
}

func NewService(resultRepo timesheet.ResultRepository) summary.Service {
	return &ServiceImpl{resultRepo: resultRepo}
}

// Aggregate computes one employee's monthly counters from final statuses.
// Category tests are independent: a late day holding a leave note counts in
// both columns. Leave alone is excluded on rest days.
func Aggregate(row timesheet.ResultRow, cal calendar.Calendar) summary.MonthlySummary {
	agg := summary.MonthlySummary{Employee: row.Employee}

	for day := 1; day <= timesheet.MaxDays; day++ {
		cell := row.Day(day)
		if cell == "" {
			continue
		}

		c := status.CategoriesOf(cell)
		if c.Normal {
			agg.Normal++
		}
		if c.Late {
			agg.Late++
		}
		if c.EarlyLeave {
			agg.EarlyLeave++
		}
		if c.MissingPunch {
			agg.MissingPunch++
		}
		if c.Absent {
			agg.Absent++
		}
		if c.BusinessTrip {
			agg.BusinessTrip++
		}
		if c.Leave && !cal.IsRestDay(day) {
			agg.Leave++
		}

		for src, hours := range status.OvertimeHours(cell) {
			switch src {
			case status.SourceOriginA:
				agg.OvertimeOriginA = agg.OvertimeOriginA.Add(hours)
			case status.SourceOriginB:
				agg.OvertimeOriginB = agg.OvertimeOriginB.Add(hours)
			}
			agg.OvertimeTotal = agg.OvertimeTotal.Add(hours)
		}
	}

	agg.ExpectedWorkingDays = cal.WorkingDays()
	agg.ActualAttendance = agg.ExpectedWorkingDays - agg.MissingPunch
	return agg
}

// aggregateWorkers bounds the read-only fan-out across employees.
const aggregateWorkers = 8

// BuildReports implements summary.Service.
func (s *ServiceImpl) BuildReports(ctx context.Context, cal calendar.Calendar) ([]summary.EmployeeReport, error) {
	rows, err := s.resultRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load result rows: %w", err)
	}

	reports := make([]summary.EmployeeReport, len(rows))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(aggregateWorkers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			report := summary.EmployeeReport{
				Row:     row,
				Summary: Aggregate(row, cal),
			}
			for day := 1; day <= timesheet.MaxDays; day++ {
				report.FormattedDays[day-1] = status.FormatForDisplay(row.Day(day), cal.IsRestDay(day))
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("monthly aggregation complete", "employees", len(reports))
	return reports, nil
}
