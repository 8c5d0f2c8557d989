package measure

import "time"

// Measure holds one Metric per step. Metrics accumulate across runs.
type Measure interface {
	// AddMetric returns the metric of the step, creating it when needed.
	AddMetric(stepID string) Metric
	// GetMetric returns nil when the step has no metric.
	GetMetric(stepID string) Metric
	AllMetrics() map[string]Metric
}

// Metric aggregates the executions of a step.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddFailure()
	AVGDuration() time.Duration
	Executions() int64
	Failures() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
