package drawer

import (
	"maps"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m      measure.Measure
	phases map[int][]string
}

func (pd *pipelineDrawer) New() error {
	pd.Reset()
	pd.phases = make(map[int][]string)

	err := pd.AddStep(model.StartStep.ID, map[string]string{"shape": "circle"})
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}
	err = pd.AddStep(model.EndStep.ID, map[string]string{"shape": "doublecircle"})
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStep(step *model.StepInfo) error {
	attributes := map[string]string{"tooltip": step.Transform}
	if !step.Enabled {
		attributes["style"] = "dashed"
	}

	err := pd.AddStep(step.ID, attributes)
	if err != nil {
		return err
	}
	pd.phases[step.Phase] = append(pd.phases[step.Phase], step.ID)

	return nil
}

func (pd *pipelineDrawer) OnStepDone(*model.StepInfo, time.Duration, error) error {
	return nil
}

// Finish links every step to the steps of the next phase, then draws.
func (pd *pipelineDrawer) Finish(totalDuration time.Duration) error {
	previous := []string{model.StartStep.ID}
	for _, phase := range slices.Sorted(maps.Keys(pd.phases)) {
		err := pd.linkAll(previous, pd.phases[phase])
		if err != nil {
			return err
		}
		previous = pd.phases[phase]
	}

	err := pd.linkAll(previous, []string{model.EndStep.ID})
	if err != nil {
		return err
	}

	if pd.m != nil {
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = pd.SetTotalTime(model.EndStep.ID, totalDuration)
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	err = pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

func (pd *pipelineDrawer) linkAll(parents, children []string) error {
	for _, parent := range parents {
		for _, child := range children {
			err := pd.AddLink(parent, child)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// PipelineDrawer draws the phase graph of every run. measure may be nil,
// otherwise the steps are labelled with the durations it holds.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
