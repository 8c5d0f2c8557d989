package measure

import (
	"time"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.ID)
	pm.AddMetric(model.EndStep.ID)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(step *model.StepInfo) error {
	pm.AddMetric(step.ID)

	return nil
}

func (pm *pipelineMeasure) OnStepDone(step *model.StepInfo, elapsed time.Duration, err error) error {
	mt := pm.AddMetric(step.ID)
	if !step.Enabled {
		return nil
	}
	mt.AddDuration(elapsed)
	if err != nil {
		mt.AddFailure()
	}

	return nil
}

func (pm *pipelineMeasure) Finish(totalDuration time.Duration) error {
	mt := pm.AddMetric(model.EndStep.ID)
	mt.AddDuration(totalDuration)
	mt.SetTotalDuration(totalDuration)

	return nil
}

// PipelineMeasure records the step durations of every run into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
