package pipeline

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/ctxlog"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

// StepResult is the outcome of one step of a run.
type StepResult struct {
	Index     int
	StepID    string
	Phase     int
	OutputKey string
	Success   bool
	// Skipped is set for disabled steps.
	Skipped bool
	Err     error
	// Output is the produced value, None for skipped or failed steps.
	Output   model.DataValue
	Duration time.Duration
}

var paramsDumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

// executeStep never returns an error, the outcome is carried by the result.
func (p *Pipeline) executeStep(ctx context.Context, index int, progress model.ProgressFunc) (res StepResult) {
	step := &p.steps[index]
	logger := ctxlog.FromContext(ctx).With("step", step.StepID)
	ctx = ctxlog.WithLogger(ctx, logger)

	res = StepResult{
		Index:     index,
		StepID:    step.StepID,
		Phase:     step.Phase,
		OutputKey: step.OutputKey,
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Output = model.None()
			res.Err = newError(ExecutionError, step.StepID, errors.Wrapf(ErrStepPanicked, "panic: %v", r))
			logger.Error("Step panicked.", "panic", r)
		}
		res.Duration = time.Since(start)
	}()

	if !step.Enabled {
		logger.Debug("Step disabled, skipping.")
		res.Success = true
		res.Skipped = true

		return res
	}

	op := p.catalog.FindByName(step.TransformName)
	if op == nil {
		res.Err = newError(LookupError, step.StepID, errors.Wrapf(ErrTransformNotFound, "transform '%s'", step.TransformName))
		logger.Error("Transform not found.", "transform", step.TransformName)

		return res
	}

	input, ok := p.resolveInput(step.InputKey)
	if !ok {
		res.Err = newError(LookupError, step.StepID, errors.Wrapf(ErrInputNotFound, "failed to get input data for key '%s'", step.InputKey))
		logger.Error("Input data not found.", "input_key", step.InputKey)

		return res
	}

	if !op.CanApply(input) {
		res.Err = newError(ApplicabilityError, step.StepID, errors.Wrapf(ErrCannotApply, "transform '%s'", step.TransformName))
		logger.Error("Transform cannot be applied to input.", "transform", step.TransformName, "input_kind", input.Kind())

		return res
	}

	params := p.bindParameters(ctx, logger, step, op.DefaultParameters())

	logger.Info("Executing step.", "transform", step.TransformName, "phase", step.Phase)
	output, err := op.Execute(ctx, input, params, progress)
	if err != nil {
		res.Err = newError(ExecutionError, step.StepID, errors.Wrapf(err, "transform '%s' failed", step.TransformName))
		logger.Error("Step failed.", "error", err)

		return res
	}
	if output.IsNone() {
		res.Err = newError(ExecutionError, step.StepID, ErrNullResult)
		logger.Error("Transform returned no data.", "transform", step.TransformName)

		return res
	}

	if step.OutputKey == "" {
		p.ephemeral.Set(step.EphemeralKey(), output)
	} else {
		p.store.Set(step.OutputKey, output)
	}

	res.Success = true
	res.Output = output
	logger.Info("Step done.", "output_kind", output.Kind(), "elapsed", time.Since(start))

	return res
}

// resolveInput looks up the outputs of the current run first.
func (p *Pipeline) resolveInput(key string) (model.DataValue, bool) {
	if value, ok := p.ephemeral.Get(key); ok {
		return value, true
	}

	return p.store.Get(key)
}

// bindParameters applies the step parameters on top of the defaults.
// A parameter that cannot be set is logged and left to its default.
func (p *Pipeline) bindParameters(ctx context.Context, logger *slog.Logger, step *model.Step, params model.Parameters) model.Parameters {
	if params == nil {
		if len(step.Parameters) > 0 {
			logger.Warn("Transform has no parameters, ignoring step parameters.", "transform", step.TransformName)
		}

		return nil
	}

	names := make([]string, 0, len(step.Parameters))
	for name := range step.Parameters {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		err := p.binder.Set(step.TransformName, params, name, step.Parameters[name], p.store)
		if err != nil {
			bindErr := newError(ParameterBindingError, step.StepID, err)
			logger.Warn("Cannot set parameter, using default.", "parameter", name, "error", bindErr)
		}
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("Parameters bound.", "parameters", paramsDumper.Sdump(params))
	}

	return params
}
