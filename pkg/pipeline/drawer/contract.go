package drawer

import (
	"time"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// Reset drops every step and link.
	Reset()
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepID string, attributes map[string]string) error
	// AddLink adds a link between parent and child steps.
	AddLink(parentStepID, childStepID string) error
	// Draw creates a file with the pipeline graph.
	Draw() error
	// SetTotalTime sets the total time for the step.
	SetTotalTime(stepID string, total time.Duration) error
	// AddMeasure colours the steps according to their average duration.
	AddMeasure(measure measure.Measure) error
}
