package pipeline

import "time"

// StageSummary is the per-stage completion report: how many records the
// stage processed and how many it skipped over recoverable errors.
type StageSummary struct {
	Name      string `json:"name"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
}

// RunStatus is the externally visible state of the pipeline. The HTTP
// surface reports this aggregate view, not per-stage detail beyond the
// summaries.
type RunStatus struct {
	RunID     string         `json:"run_id,omitempty"`
	IsRunning bool           `json:"is_running"`
	StartTime *time.Time     `json:"start_time,omitempty"`
	EndTime   *time.Time     `json:"end_time,omitempty"`
	ExitCode  *int           `json:"exit_code,omitempty"`
	Stages    []StageSummary `json:"stages,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// RunResult is returned by the synchronous run endpoint.
type RunResult struct {
	RunID      string         `json:"run_id"`
	ReportFile string         `json:"report_file,omitempty"`
	Stages     []StageSummary `json:"stages"`
}
