package model

// Parameters is a pointer to a transform specific parameter struct.
type Parameters any

// ProgressFunc receives the progress of a single step, in percent.
type ProgressFunc func(percent int)

// PipelineProgressFunc receives pipeline level progress. Phase boundaries are
// reported with stepIndex -1 and a message in place of the step ID.
// It is called from worker goroutines and must be safe for concurrent use.
type PipelineProgressFunc func(stepIndex int, stepID string, stepPercent, overallPercent int)
