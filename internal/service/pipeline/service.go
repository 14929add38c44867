package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/pipeline"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/summary"
)

// Stage is one step of the run. Stages execute strictly in order; a stage
// only starts after the previous one has committed its writes.
type Stage interface {
	Run(ctx context.Context, cal calendar.Calendar) (pipeline.StageSummary, error)
}

// Renderer writes the final report workbook.
type Renderer interface {
	Render(reports []summary.EmployeeReport, cal calendar.Calendar) (string, error)
}

type ServiceImpl struct {
	calendarRepo calendar.Repository
	stages       []Stage
	summarizer   summary.Service
	renderer     Renderer

	mu     sync.Mutex
	status pipeline.RunStatus
}

// NewService wires the ordered stage list. The order is load-bearing:
// classification must land before the trip overlay, trips before leaves,
// leaves before overtime.
func NewService(
	calendarRepo calendar.Repository,
	ingest Stage,
	classify Stage,
	trip Stage,
	leave Stage,
	overtime Stage,
	summarizer summary.Service,
	renderer Renderer,
) pipeline.Service {
	return &ServiceImpl{
		calendarRepo: calendarRepo,
		stages:       []Stage{ingest, classify, trip, leave, overtime},
		summarizer:   summarizer,
		renderer:     renderer,
	}
}

// begin claims the run slot. Returns ErrRunInProgress if another run holds
// it.
func (s *ServiceImpl) begin() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.IsRunning {
		return "", pipeline.ErrRunInProgress
	}
	runID := uuid.NewString()
	now := time.Now()
	s.status = pipeline.RunStatus{
		RunID:     runID,
		IsRunning: true,
		StartTime: &now,
	}
	return runID, nil
}

func (s *ServiceImpl) finish(stages []pipeline.StageSummary, runErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	code := 0
	s.status.IsRunning = false
	s.status.EndTime = &now
	s.status.Stages = stages
	if runErr != nil {
		code = 1
		s.status.Error = runErr.Error()
	}
	s.status.ExitCode = &code
}

func (s *ServiceImpl) Run(ctx context.Context) (pipeline.RunResult, error) {
	runID, err := s.begin()
	if err != nil {
		return pipeline.RunResult{}, err
	}
	result, err := s.execute(ctx, runID)
	return result, err
}

func (s *ServiceImpl) RunAsync(ctx context.Context) (string, error) {
	runID, err := s.begin()
	if err != nil {
		return "", err
	}
	go func() {
		// Detach from the request context; the run outlives the request.
		if _, err := s.execute(context.Background(), runID); err != nil {
			slog.Error("background pipeline run failed", "run_id", runID, "error", err)
		}
	}()
	return runID, nil
}

func (s *ServiceImpl) Status() pipeline.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *ServiceImpl) execute(ctx context.Context, runID string) (pipeline.RunResult, error) {
	var summaries []pipeline.StageSummary

	cal, err := s.calendarRepo.Get(ctx)
	if err != nil {
		err = fmt.Errorf("failed to load rest calendar: %w", err)
		s.finish(summaries, err)
		return pipeline.RunResult{}, err
	}

	slog.Info("pipeline run started",
		"run_id", runID, "year", cal.Year, "month", int(cal.Month))
	start := time.Now()

	for _, stage := range s.stages {
		sum, err := stage.Run(ctx, cal)
		if err != nil {
			err = fmt.Errorf("stage %s failed: %w", sum.Name, err)
			s.finish(summaries, err)
			return pipeline.RunResult{}, err
		}
		summaries = append(summaries, sum)
		slog.Info("stage complete",
			"run_id", runID, "stage", sum.Name,
			"processed", sum.Processed, "skipped", sum.Skipped)
	}

	reports, err := s.summarizer.BuildReports(ctx, cal)
	if err != nil {
		err = fmt.Errorf("aggregation failed: %w", err)
		s.finish(summaries, err)
		return pipeline.RunResult{}, err
	}
	file, err := s.renderer.Render(reports, cal)
	if err != nil {
		err = fmt.Errorf("report rendering failed: %w", err)
		s.finish(summaries, err)
		return pipeline.RunResult{}, err
	}
	summaries = append(summaries, pipeline.StageSummary{
		Name:      "report",
		Processed: len(reports),
	})

	s.finish(summaries, nil)
	slog.Info("pipeline run finished",
		"run_id", runID, "report", file, "duration", time.Since(start).String())
	return pipeline.RunResult{
		RunID:      runID,
		ReportFile: file,
		Stages:     summaries,
	}, nil
}
