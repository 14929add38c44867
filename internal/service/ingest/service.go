package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/event"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/pipeline"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
)

// Service is the ingestion stage: it reads the seven uploaded workbooks,
// normalizes the two origins' layouts into common event records, keeps only
// approved records dated in the active month, and reloads the source
// tables.
type Service struct {
	uploadDir string
	// leaveNameSuffix is the known employee-name suffix variant stripped
	// from leave records before storage; the leave overlay's prefix match
	// tolerates the suffixed form in the result table.
	leaveNameSuffix string

	baseRepo     timesheet.BaseRepository
	tripRepo     event.TripRepository
	leaveRepo    event.LeaveRepository
	overtimeRepo event.OvertimeRepository
}

func NewService(
	uploadDir string,
	leaveNameSuffix string,
	baseRepo timesheet.BaseRepository,
	tripRepo event.TripRepository,
	leaveRepo event.LeaveRepository,
	overtimeRepo event.OvertimeRepository,
) *Service {
	return &Service{
		uploadDir:       uploadDir,
		leaveNameSuffix: leaveNameSuffix,
		baseRepo:        baseRepo,
		tripRepo:        tripRepo,
		leaveRepo:       leaveRepo,
		overtimeRepo:    overtimeRepo,
	}
}

func (s *Service) open(name string) (*excelize.File, error) {
	f, err := excelize.OpenFile(filepath.Join(s.uploadDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}

// inMonth reports whether a date belongs to the active month.
func inMonth(t time.Time, cal calendar.Calendar) bool {
	return t.Year() == cal.Year && t.Month() == cal.Month
}

// normalizeRange parses the start/end cells of an accepted record and
// applies the active-month filter on the start date. The bool is false for
// out-of-month records; an error means the record is malformed.
func normalizeRange(row eventRow, cal calendar.Calendar) (start, end time.Time, ok bool, err error) {
	start, err = parseEventDate(row.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	end, err = parseEventDate(row.End)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return start, end, inMonth(start, cal), nil
}

// Run implements the ingestion stage.
func (s *Service) Run(ctx context.Context, cal calendar.Calendar) (pipeline.StageSummary, error) {
	summary := pipeline.StageSummary{Name: "ingest"}

	baseRows, err := s.ingestPunches(ctx)
	if err != nil {
		return summary, err
	}
	summary.Processed += baseRows

	trips, skipped, err := s.ingestTrips(ctx, cal)
	if err != nil {
		return summary, err
	}
	summary.Processed += trips
	summary.Skipped += skipped

	leaves, skipped, err := s.ingestLeaves(ctx, cal)
	if err != nil {
		return summary, err
	}
	summary.Processed += leaves
	summary.Skipped += skipped

	overtimes, skipped, err := s.ingestOvertimes(ctx, cal)
	if err != nil {
		return summary, err
	}
	summary.Processed += overtimes
	summary.Skipped += skipped

	slog.Info("ingestion complete",
		"employees", baseRows, "trips", trips, "leaves", leaves, "overtimes", overtimes,
		"skipped", summary.Skipped)
	return summary, nil
}

func (s *Service) ingestPunches(ctx context.Context) (int, error) {
	f, err := s.open(FilePunches)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := parsePunchSheet(f)
	if err != nil {
		return 0, fmt.Errorf("failed to parse punch workbook: %w", err)
	}
	if err := s.baseRepo.Reset(ctx); err != nil {
		return 0, err
	}
	if err := s.baseRepo.BulkInsert(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

type sourceSheet struct {
	file   string
	layout eventLayout
}

func (s *Service) collectEventRows(sheets []sourceSheet) ([]eventRow, error) {
	var records []eventRow
	for _, sheet := range sheets {
		f, err := s.open(sheet.file)
		if err != nil {
			return nil, err
		}
		rows, err := parseEventSheet(f, sheet.layout)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", sheet.file, err)
		}
		records = append(records, rows...)
	}
	return records, nil
}

func (s *Service) ingestTrips(ctx context.Context, cal calendar.Calendar) (int, int, error) {
	records, err := s.collectEventRows([]sourceSheet{
		{FileTripOriginA, tripLayoutA},
		{FileTripOriginB, tripLayoutB},
	})
	if err != nil {
		return 0, 0, err
	}

	var events []event.TripEvent
	skipped := 0
	for _, row := range records {
		start, end, ok, err := normalizeRange(row, cal)
		if err != nil {
			slog.Warn("malformed trip record, skipping", "employee", row.Name, "error", err)
			skipped++
			continue
		}
		if !ok {
			continue
		}
		events = append(events, event.TripEvent{
			EmployeeName: row.Name,
			Start:        start,
			End:          end,
			Reason:       row.Reason,
			Duration:     row.Duration,
			Source:       row.Source,
		})
	}

	if err := s.tripRepo.Reset(ctx); err != nil {
		return 0, 0, err
	}
	if err := s.tripRepo.BulkInsert(ctx, events); err != nil {
		return 0, 0, err
	}
	return len(events), skipped, nil
}

func (s *Service) ingestLeaves(ctx context.Context, cal calendar.Calendar) (int, int, error) {
	records, err := s.collectEventRows([]sourceSheet{
		{FileLeaveOriginA, leaveLayoutA},
		{FileLeaveOriginB, leaveLayoutB},
	})
	if err != nil {
		return 0, 0, err
	}

	var events []event.LeaveEvent
	skipped := 0
	for _, row := range records {
		start, end, ok, err := normalizeRange(row, cal)
		if err != nil {
			slog.Warn("malformed leave record, skipping", "employee", row.Name, "error", err)
			skipped++
			continue
		}
		if !ok {
			continue
		}

		duration := row.Duration
		if row.Source == status.SourceOriginA {
			// Origin-A exports a bare number of days; origin-B already
			// carries the unit.
			duration += " day"
		}
		events = append(events, event.LeaveEvent{
			EmployeeName: strings.TrimSuffix(row.Name, s.leaveNameSuffix),
			Start:        start,
			End:          end,
			Reason:       row.Reason,
			Duration:     duration,
			Source:       row.Source,
		})
	}

	if err := s.leaveRepo.Reset(ctx); err != nil {
		return 0, 0, err
	}
	if err := s.leaveRepo.BulkInsert(ctx, events); err != nil {
		return 0, 0, err
	}
	return len(events), skipped, nil
}

func (s *Service) ingestOvertimes(ctx context.Context, cal calendar.Calendar) (int, int, error) {
	records, err := s.collectEventRows([]sourceSheet{
		{FileOvertimeOriginA, overtimeLayoutA},
		{FileOvertimeOriginB, overtimeLayoutB},
	})
	if err != nil {
		return 0, 0, err
	}

	var events []event.OvertimeEvent
	skipped := 0
	for _, row := range records {
		start, end, ok, err := normalizeRange(row, cal)
		if err != nil {
			slog.Warn("malformed overtime record, skipping", "employee", row.Name, "error", err)
			skipped++
			continue
		}
		if !ok {
			continue
		}
		events = append(events, event.OvertimeEvent{
			EmployeeName: row.Name,
			Start:        start,
			End:          end,
			DurationText: row.Duration,
			Reason:       row.Reason,
			Source:       row.Source,
		})
	}

	if err := s.overtimeRepo.Reset(ctx); err != nil {
		return 0, 0, err
	}
	if err := s.overtimeRepo.BulkInsert(ctx, events); err != nil {
		return 0, 0, err
	}
	return len(events), skipped, nil
}
