package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/ctxlog"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

// Result is the outcome of a run.
type Result struct {
	RunID   uuid.UUID
	Success bool
	// Err wraps the error of the first failing step.
	Err          error
	FailedStepID string
	TotalSteps   int
	// StepsCompleted counts the steps that succeeded, disabled steps included.
	StepsCompleted int
	StepResults    []StepResult
	Duration       time.Duration
}

// Execute runs the steps phase by phase, in ascending phase order.
// Steps sharing a phase run concurrently and a phase only starts once the
// previous one is done. The first failing phase stops the run.
// progress may be nil.
func (p *Pipeline) Execute(ctx context.Context, progress model.PipelineProgressFunc) *Result {
	start := time.Now()
	res := &Result{
		RunID:      uuid.New(),
		TotalSteps: len(p.steps),
	}
	if progress == nil {
		progress = func(int, string, int, int) {}
	}

	p.ephemeral.Reset()

	logger := p.logger.With("run_id", res.RunID.String())
	ctx = ctxlog.WithLogger(ctx, logger)

	p.notifyStart(logger)

	phases := make(map[int][]int)
	for i := range p.steps {
		phases[p.steps[i].Phase] = append(phases[p.steps[i].Phase], i)
	}

	logger.Info("Pipeline started.", "steps", len(p.steps), "phases", len(phases))

	res.Success = true
	for _, phase := range slices.Sorted(maps.Keys(phases)) {
		progress(-1, fmt.Sprintf("Starting phase %d", phase), 0, p.overall(res.StepsCompleted))
		logger.Info("Starting phase.", "phase", phase, "steps", len(phases[phase]))

		results := p.executePhase(ctx, phases[phase], progress)
		for i := range results {
			p.notifyStepDone(logger, &results[i])
			if results[i].Success {
				res.StepsCompleted++
			} else if res.Success {
				res.Success = false
				res.FailedStepID = results[i].StepID
				res.Err = errors.Wrap(results[i].Err, "step failed")
			}
		}
		res.StepResults = append(res.StepResults, results...)

		if !res.Success {
			logger.Error("Pipeline failed.", "phase", phase, "step", res.FailedStepID, "error", res.Err)

			break
		}
	}

	if res.Success {
		progress(-1, "Pipeline completed", 100, 100)
	}

	res.Duration = time.Since(start)
	logger.Info("Pipeline finished.", "success", res.Success, "completed", res.StepsCompleted, "elapsed", res.Duration)
	p.notifyFinish(logger, res.Duration)

	return res
}

// executePhase returns the results in step order.
func (p *Pipeline) executePhase(ctx context.Context, indexes []int, progress model.PipelineProgressFunc) []StepResult {
	results := make([]StepResult, len(indexes))

	if len(indexes) == 1 {
		results[0] = p.executeStep(ctx, indexes[0], p.stepProgress(indexes[0], progress))

		return results
	}

	var errGrp errgroup.Group
	for i, index := range indexes {
		errGrp.Go(func() error {
			results[i] = p.executeStep(ctx, index, p.stepProgress(index, progress))

			return nil
		})
	}
	_ = errGrp.Wait()

	return results
}

func (p *Pipeline) stepProgress(index int, progress model.PipelineProgressFunc) model.ProgressFunc {
	stepID := p.steps[index].StepID
	overall := p.overall(index)

	return func(percent int) {
		progress(index, stepID, percent, overall)
	}
}

func (p *Pipeline) overall(done int) int {
	if len(p.steps) == 0 {
		return 0
	}

	return done * 100 / len(p.steps)
}

func (p *Pipeline) notifyStart(logger *slog.Logger) {
	for _, opt := range p.opts {
		if err := opt.New(); err != nil {
			logger.Warn("Pipeline option failed to start.", "error", err)

			continue
		}
		for i := range p.steps {
			if err := opt.PrepareStep(p.steps[i].Info(i)); err != nil {
				logger.Warn("Pipeline option failed to prepare step.", "step", p.steps[i].StepID, "error", err)
			}
		}
	}
}

func (p *Pipeline) notifyStepDone(logger *slog.Logger, res *StepResult) {
	info := p.steps[res.Index].Info(res.Index)
	for _, opt := range p.opts {
		if err := opt.OnStepDone(info, res.Duration, res.Err); err != nil {
			logger.Warn("Pipeline option failed on step done.", "step", res.StepID, "error", err)
		}
	}
}

func (p *Pipeline) notifyFinish(logger *slog.Logger, elapsed time.Duration) {
	for _, opt := range p.opts {
		if err := opt.Finish(elapsed); err != nil {
			logger.Warn("Pipeline option failed to finish.", "error", err)
		}
	}
}
