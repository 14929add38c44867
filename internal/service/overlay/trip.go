package overlay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/event"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/pipeline"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/database"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
	"github.com/attendly-hq/attendance-engine-go/internal/repository/postgresql"
)

// TripOverlay applies business-trip events. A trip is an authoritative
// override: every day in the range is replaced outright, discarding the
// clock-derived classification and any earlier note. Employees are matched
// by exact name.
type TripOverlay struct {
	db         *database.DB
	resultRepo timesheet.ResultRepository
	tripRepo   event.TripRepository
	runTx      txRunner
}

func NewTripOverlay(db *database.DB, resultRepo timesheet.ResultRepository, tripRepo event.TripRepository) *TripOverlay {
	return &TripOverlay{db: db, resultRepo: resultRepo, tripRepo: tripRepo, runTx: postgresql.WithTransaction}
}

// Run applies every stored trip event. One bad event is skipped with a
// warning; only database-level failures abort the stage.
func (o *TripOverlay) Run(ctx context.Context, cal calendar.Calendar) (pipeline.StageSummary, error) {
	summary := pipeline.StageSummary{Name: "trip-overlay"}

	events, err := o.tripRepo.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to load trip events: %w", err)
	}

	for _, ev := range events {
		startDay, endDay, ok := dayRange(cal, ev.Start, ev.End)
		if !ok {
			slog.Warn("trip event outside active month, skipping",
				"employee", ev.EmployeeName, "start", ev.Start, "end", ev.End)
			summary.Skipped++
			continue
		}

		override := status.Overlay{Kind: status.OverlayTrip, Reason: ev.Reason}
		err := o.runTx(ctx, o.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)
			for day := startDay; day <= endDay; day++ {
				if err := o.resultRepo.SetDay(txCtx, ev.EmployeeName, day, override.Apply("")); err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, timesheet.ErrEmployeeNotFound) {
			slog.Warn("trip event references unknown employee, skipping",
				"employee", ev.EmployeeName)
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("trip overlay for %q: %w", ev.EmployeeName, err)
		}
		summary.Processed++
	}

	slog.Info("trip overlay complete", "processed", summary.Processed, "skipped", summary.Skipped)
	return summary, nil
}
