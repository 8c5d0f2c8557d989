package measure_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

func TestDefaultMeasureAddMetric(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	assert.Nil(t, msr.GetMetric("a"))

	mt := msr.AddMetric("a")
	mt.AddDuration(time.Second)
	assert.Same(t, mt, msr.AddMetric("a"))
	assert.Same(t, mt, msr.GetMetric("a"))

	all := msr.AllMetrics()
	delete(all, "a")
	assert.Len(t, msr.AllMetrics(), 1)
}

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	mt := measure.NewDefaultMeasure().AddMetric("a")
	assert.Zero(t, mt.AVGDuration())

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mt.AddDuration(2 * time.Second)
			mt.AddDuration(4 * time.Second)
			mt.AddFailure()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(20), mt.Executions())
	assert.Equal(t, int64(10), mt.Failures())
	assert.Equal(t, 3*time.Second, mt.AVGDuration())

	mt.SetTotalDuration(time.Minute)
	assert.Equal(t, time.Minute, mt.GetTotalDuration())
}

func TestRound(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input time.Duration
		want  time.Duration
	}{
		"nanoseconds":  {input: 999 * time.Nanosecond, want: 999 * time.Nanosecond},
		"milliseconds": {input: 1500*time.Microsecond + 700*time.Nanosecond, want: 1501 * time.Microsecond},
		"seconds":      {input: 2*time.Second + 1500*time.Microsecond, want: 2*time.Second + 2*time.Millisecond},
		"minutes":      {input: 2*time.Minute + 1600*time.Millisecond, want: 2*time.Minute + 2*time.Second},
		"hours":        {input: 2*time.Hour + 40*time.Second, want: 2*time.Hour + time.Minute},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, measure.Round(tc.input))
		})
	}
}

func TestPipelineMeasure(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	opt := measure.PipelineMeasure(msr)

	enabled := &model.StepInfo{Index: 0, ID: "a", Phase: 0, Enabled: true}
	disabled := &model.StepInfo{Index: 1, ID: "b", Phase: 1, Enabled: false}

	for range 2 {
		require.NoError(t, opt.New())
		require.NoError(t, opt.PrepareStep(enabled))
		require.NoError(t, opt.PrepareStep(disabled))
		require.NoError(t, opt.OnStepDone(enabled, 10*time.Millisecond, nil))
		require.NoError(t, opt.OnStepDone(disabled, time.Millisecond, nil))
		require.NoError(t, opt.Finish(20*time.Millisecond))
	}
	require.NoError(t, opt.OnStepDone(enabled, 40*time.Millisecond, assert.AnError))

	metrics := msr.AllMetrics()
	assert.Len(t, metrics, 4)
	assert.Equal(t, int64(3), metrics["a"].Executions())
	assert.Equal(t, int64(1), metrics["a"].Failures())
	assert.Equal(t, 20*time.Millisecond, metrics["a"].AVGDuration())
	assert.Zero(t, metrics["b"].Executions())
	assert.Equal(t, 20*time.Millisecond, metrics[model.EndStep.ID].GetTotalDuration())
	assert.Equal(t, int64(2), metrics[model.EndStep.ID].Executions())
}
