package model

import "encoding/json"

// Step is one transform invocation as declared in a pipeline document.
type Step struct {
	StepID        string
	TransformName string
	InputKey      string
	// OutputKey is empty when the output only lives for the current run.
	OutputKey   string
	Parameters  map[string]json.RawMessage
	Phase       int
	Enabled     bool
	Description string
	Tags        []string
}

// EphemeralKey is the key under which a step without output key stores its result.
func (s *Step) EphemeralKey() string {
	return s.StepID + "_output"
}

// StepInfo describes a step to pipeline options.
type StepInfo struct {
	Index     int
	ID        string
	Transform string
	Phase     int
	Enabled   bool
}

// Info returns the StepInfo of the step at the given index.
func (s *Step) Info(index int) *StepInfo {
	return &StepInfo{
		Index:     index,
		ID:        s.StepID,
		Transform: s.TransformName,
		Phase:     s.Phase,
		Enabled:   s.Enabled,
	}
}

var (
	StartStep = &StepInfo{Index: -1, ID: "start", Phase: -1}
	EndStep   = &StepInfo{Index: -1, ID: "end", Phase: -1}
)
