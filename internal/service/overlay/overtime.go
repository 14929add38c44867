package overlay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/event"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/pipeline"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/database"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
	"github.com/attendly-hq/attendance-engine-go/internal/repository/postgresql"
)

// OvertimeOverlay appends overtime notes. Matching is by exact employee
// name. Notes land on the event's START day only, even when the event's
// end timestamp falls on a later day; overnight overtime is under-applied.
// That mirrors the upstream process this replaces and is kept on purpose
// until the owning team rules on the intended behavior.
type OvertimeOverlay struct {
	db           *database.DB
	resultRepo   timesheet.ResultRepository
	overtimeRepo event.OvertimeRepository
	runTx        txRunner
}

func NewOvertimeOverlay(db *database.DB, resultRepo timesheet.ResultRepository, overtimeRepo event.OvertimeRepository) *OvertimeOverlay {
	return &OvertimeOverlay{db: db, resultRepo: resultRepo, overtimeRepo: overtimeRepo, runTx: postgresql.WithTransaction}
}

// ParseHours extracts the hour count from a duration text such as "2.5hour"
// or "3h".
func ParseHours(text string) (float64, error) {
	cleaned := strings.ReplaceAll(text, "hour", "")
	cleaned = strings.ReplaceAll(cleaned, "h", "")
	hours, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", event.ErrBadDuration, text)
	}
	return hours, nil
}

// Run applies every stored overtime event, one transaction per event.
func (o *OvertimeOverlay) Run(ctx context.Context, cal calendar.Calendar) (pipeline.StageSummary, error) {
	summary := pipeline.StageSummary{Name: "overtime-overlay"}

	events, err := o.overtimeRepo.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to load overtime events: %w", err)
	}

	for _, ev := range events {
		hours, err := ParseHours(ev.DurationText)
		if err != nil {
			slog.Warn("unparseable overtime duration, skipping",
				"employee", ev.EmployeeName, "duration", ev.DurationText)
			summary.Skipped++
			continue
		}

		day := ev.Start.Day()
		if ev.Start.Year() != cal.Year || ev.Start.Month() != cal.Month {
			slog.Warn("overtime event outside active month, skipping",
				"employee", ev.EmployeeName, "start", ev.Start)
			summary.Skipped++
			continue
		}

		note := status.Overlay{Kind: status.OverlayOvertime, Source: ev.Source, Hours: hours}
		err = o.runTx(ctx, o.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)
			current, found, err := o.resultRepo.GetDay(txCtx, ev.EmployeeName, day)
			if err != nil {
				return err
			}
			if !found {
				return timesheet.ErrEmployeeNotFound
			}
			return o.resultRepo.SetDay(txCtx, ev.EmployeeName, day, note.Apply(current))
		})
		if errors.Is(err, timesheet.ErrEmployeeNotFound) {
			slog.Warn("overtime event references unknown employee, skipping",
				"employee", ev.EmployeeName)
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("overtime overlay for %q: %w", ev.EmployeeName, err)
		}
		summary.Processed++
	}

	slog.Info("overtime overlay complete", "processed", summary.Processed, "skipped", summary.Skipped)
	return summary, nil
}
