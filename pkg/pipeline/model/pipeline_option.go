package model

import "time"

// PipelineOption defines the interface for options observing a pipeline run.
// Errors returned by an option are logged and never fail the run.
type PipelineOption interface {
	// New runs before the first phase starts.
	New() error
	// PrepareStep runs once per step, in document order, before the first phase starts.
	PrepareStep(step *StepInfo) error
	// OnStepDone runs once the phase of the step is over, in step order.
	OnStepDone(step *StepInfo, elapsed time.Duration, err error) error
	// Finish runs after the pipeline is finished, whatever the outcome.
	Finish(totalDuration time.Duration) error
}
