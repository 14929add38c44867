package pipeline

import "context"

// Service runs the full classification pipeline as an ordered stage graph:
// Ingest -> Classify -> Trip -> Leave -> Overtime -> Aggregate/Report.
// A stage must commit before the next one starts; overlay stages depend on
// the previous stage's persisted output being visible.
type Service interface {
	// Run executes the pipeline and blocks until it finishes.
	// Returns ErrRunInProgress when a run is already active.
	Run(ctx context.Context) (RunResult, error)

	// RunAsync starts the pipeline in the background.
	RunAsync(ctx context.Context) (string, error)

	// Status returns the current or last run state.
	Status() RunStatus
}
