package overlay

import (
	"context"
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

// LeaveOverlay appends leave notes to the days an approved leave covers.
// Unlike the trip and overtime overlays it matches employees by name
// PREFIX: leave rows arrive with a known suffix variant stripped, and the
// prefix match tolerates the suffixed form still present in the result
// table. The two match rules are kept deliberately distinct; whether the
// asymmetry is intentional upstream is unresolved.
//
// The merge is strictly additive. Applying the same event twice appends
// two notes; deduplication is not this stage's contract.
type LeaveOverlay struct {
	db         *database.DB
	resultRepo timesheet.ResultRepository
	leaveRepo  event.LeaveRepository
	runTx      txRunner
}

func NewLeaveOverlay(db *database.DB, resultRepo timesheet.ResultRepository, leaveRepo event.LeaveRepository) *LeaveOverlay {
	return &LeaveOverlay{db: db, resultRepo: resultRepo, leaveRepo: leaveRepo, runTx: postgresql.WithTransaction}
}

// Run applies every stored leave event, one transaction per event.
func (o *LeaveOverlay) Run(ctx context.Context, cal calendar.Calendar) (pipeline.StageSummary, error) {
	summary := pipeline.StageSummary{Name: "leave-overlay"}

	events, err := o.leaveRepo.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to load leave events: %w", err)
	}

	for _, ev := range events {
		startDay, endDay, ok := dayRange(cal, ev.Start, ev.End)
		if !ok {
			slog.Warn("leave event outside active month, skipping",
				"employee", ev.EmployeeName, "start", ev.Start, "end", ev.End)
			summary.Skipped++
			continue
		}

		note := status.Overlay{Kind: status.OverlayLeave, Source: ev.Source, Duration: ev.Duration, Reason: ev.Reason}
		err := o.runTx(ctx, o.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)
			for day := startDay; day <= endDay; day++ {
				current, found, err := o.resultRepo.GetDayByPrefix(txCtx, ev.EmployeeName, day)
				if err != nil {
					return err
				}
				if !found {
					slog.Warn("leave event references unknown employee, skipping day",
						"employee", ev.EmployeeName, "day", day)
					continue
				}
				if err := o.resultRepo.SetDayByPrefix(txCtx, ev.EmployeeName, day, note.Apply(current)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return summary, fmt.Errorf("leave overlay for %q: %w", ev.EmployeeName, err)
		}
		summary.Processed++
	}

	slog.Info("leave overlay complete", "processed", summary.Processed, "skipped", summary.Skipped)
	return summary, nil
}
