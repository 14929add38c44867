package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/pipeline"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
)

// Service is the base classification stage: it reads the raw punch rows and
// writes one result row per employee with every day classified.
type Service struct {
	policy     Policy
	baseRepo   timesheet.BaseRepository
	resultRepo timesheet.ResultRepository
}

func NewService(policy Policy, baseRepo timesheet.BaseRepository, resultRepo timesheet.ResultRepository) *Service {
	return &Service{
		policy:     policy,
		baseRepo:   baseRepo,
		resultRepo: resultRepo,
	}
}

// classifyWorkers bounds the per-employee fan-out. Employees touch disjoint
// rows, so classification parallelizes freely; the overlay stages do not.
const classifyWorkers = 8

// Run rebuilds the result table from the base rows. The table must be fully
// committed before any overlay stage starts.
func (s *Service) Run(ctx context.Context, cal calendar.Calendar) (pipeline.StageSummary, error) {
	summary := pipeline.StageSummary{Name: "classify"}

	rows, err := s.baseRepo.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to load base rows: %w", err)
	}

	if err := s.resultRepo.Reset(ctx); err != nil {
		return summary, fmt.Errorf("failed to reset result table: %w", err)
	}

	days := cal.DaysInMonth()

	var processed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(classifyWorkers)
	for _, row := range rows {
		row := row
		g.Go(func() error {
			result := timesheet.ResultRow{Employee: row.Employee}
			for day := 1; day <= days; day++ {
				cell := row.Days[day-1]
				classified := Classify(s.policy, cell, cal.IsRestDay(day))
				result.SetDay(day, classified.Render())
			}
			if err := s.resultRepo.Insert(gctx, result); err != nil {
				return err
			}
			processed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, fmt.Errorf("classification failed: %w", err)
	}

	summary.Processed = int(processed.Load())
	slog.Info("classification complete", "employees", summary.Processed, "days", days)
	return summary, nil
}
