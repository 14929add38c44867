package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/pipeline"
)

type PipelineJobs struct {
	pipelineSvc pipeline.Service
	runHourUTC  int
}

func NewPipelineJobs(pipelineSvc pipeline.Service, runHourUTC int) *PipelineJobs {
	return &PipelineJobs{
		pipelineSvc: pipelineSvc,
		runHourUTC:  runHourUTC,
	}
}

func (j *PipelineJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("nightly_pipeline_run", 1*time.Hour, j.NightlyRun)
}

// NightlyRun refreshes the month's classification from the last uploaded
// workbooks. The ticker fires hourly; work only happens inside the
// configured hour.
func (j *PipelineJobs) NightlyRun(ctx context.Context) error {
	if time.Now().UTC().Hour() != j.runHourUTC {
		return nil
	}

	slog.Info("Cron: Starting nightly pipeline run")

	result, err := j.pipelineSvc.Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrRunInProgress) {
			slog.Info("Cron: Pipeline already running, skipping")
			return nil
		}
		return err
	}

	slog.Info("Cron: Nightly pipeline run finished",
		"run_id", result.RunID, "report", result.ReportFile)
	return nil
}
