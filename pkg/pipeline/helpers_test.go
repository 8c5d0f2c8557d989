package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/binder"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/catalog"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/ctxlog"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/store"
)

type fakeParams struct {
	Gain    float64
	DelayMS int
	Tag     string
}

type executeFn func(ctx context.Context, value model.DataValue, params *fakeParams, progress model.ProgressFunc) (model.DataValue, error)

type fakeOperation struct {
	name string
	kind model.Kind
	fn   executeFn
}

func (f *fakeOperation) Name() string                        { return f.name }
func (f *fakeOperation) TargetKind() model.Kind              { return f.kind }
func (f *fakeOperation) CanApply(value model.DataValue) bool { return value.Kind() == f.kind }
func (f *fakeOperation) DefaultParameters() model.Parameters { return &fakeParams{Gain: 1} }
func (f *fakeOperation) Execute(ctx context.Context, value model.DataValue, params model.Parameters, progress model.ProgressFunc) (model.DataValue, error) {
	p, _ := params.(*fakeParams)

	return f.fn(ctx, value, p, progress)
}

func scale(_ context.Context, value model.DataValue, params *fakeParams, progress model.ProgressFunc) (model.DataValue, error) {
	in, _ := value.AsAnalog()
	out := &model.AnalogTimeSeries{
		Values: make([]float32, len(in.Values)),
		Times:  append([]int64(nil), in.Times...),
	}
	for i, v := range in.Values {
		out.Values[i] = v * float32(params.Gain)
		if progress != nil && i == len(in.Values)/2 {
			progress(50)
		}
	}
	if progress != nil {
		progress(100)
	}

	return model.Analog(out), nil
}

// recorder tracks the order in which steps start and end.
type recorder struct {
	mu      sync.Mutex
	events  []string
	running atomic.Int64
	maxSeen atomic.Int64
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

func (r *recorder) operation() *fakeOperation {
	return &fakeOperation{
		name: "Record",
		kind: model.KindAnalogTimeSeries,
		fn: func(_ context.Context, value model.DataValue, params *fakeParams, _ model.ProgressFunc) (model.DataValue, error) {
			r.add("start " + params.Tag)
			running := r.running.Add(1)
			for {
				seen := r.maxSeen.Load()
				if running <= seen || r.maxSeen.CompareAndSwap(seen, running) {
					break
				}
			}
			time.Sleep(time.Duration(params.DelayMS) * time.Millisecond)
			r.running.Add(-1)
			r.add("end " + params.Tag)

			return value, nil
		},
	}
}

// countingStore counts the writes of the pipeline.
type countingStore struct {
	*store.MemoryStore
	sets atomic.Int64
}

func (s *countingStore) Set(key string, value model.DataValue) {
	s.sets.Add(1)
	s.MemoryStore.Set(key, value)
}

func newAnalog(values ...float32) model.DataValue {
	times := make([]int64, len(values))
	for i := range times {
		times[i] = int64(i)
	}

	return model.Analog(&model.AnalogTimeSeries{Values: values, Times: times})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *store.MemoryStore {
	t.Helper()

	st := store.NewMemoryStore()
	st.Set("raw", newAnalog(1, 2, 3))

	return st
}

func newCatalog(t *testing.T, rec *recorder) *catalog.Catalog {
	t.Helper()

	if rec == nil {
		rec = &recorder{}
	}

	cat, err := catalog.New(
		&fakeOperation{name: "Scale", kind: model.KindAnalogTimeSeries, fn: scale},
		&fakeOperation{name: "Fail", kind: model.KindAnalogTimeSeries, fn: func(context.Context, model.DataValue, *fakeParams, model.ProgressFunc) (model.DataValue, error) {
			return model.None(), assert.AnError
		}},
		&fakeOperation{name: "Null", kind: model.KindAnalogTimeSeries, fn: func(context.Context, model.DataValue, *fakeParams, model.ProgressFunc) (model.DataValue, error) {
			return model.None(), nil
		}},
		&fakeOperation{name: "Panic", kind: model.KindAnalogTimeSeries, fn: func(context.Context, model.DataValue, *fakeParams, model.ProgressFunc) (model.DataValue, error) {
			panic("boom")
		}},
		&fakeOperation{name: "Skeletonize", kind: model.KindMaskData, fn: func(_ context.Context, value model.DataValue, _ *fakeParams, _ model.ProgressFunc) (model.DataValue, error) {
			return value, nil
		}},
		&fakeOperation{name: "Log", kind: model.KindAnalogTimeSeries, fn: func(ctx context.Context, value model.DataValue, params *fakeParams, _ model.ProgressFunc) (model.DataValue, error) {
			ctxlog.FromContext(ctx).Info("Operation logging.", "gain", params.Gain)

			return value, nil
		}},
		rec.operation(),
	)
	require.NoError(t, err)

	return cat
}

func newBinder() *binder.Binder {
	gain := func(p *fakeParams) *float64 { return &p.Gain }
	delay := func(p *fakeParams) *int { return &p.DelayMS }
	tag := func(p *fakeParams) *string { return &p.Tag }

	return binder.New(binder.RegistrarFunc(func(b *binder.Binder) {
		binder.RegisterBasic(b, "Scale", "gain", gain)
		binder.RegisterBasic(b, "Record", "delay_ms", delay)
		binder.RegisterBasic(b, "Record", "tag", tag)
	}))
}

type testPipeline struct {
	*pipeline.Pipeline
	store    binder.Store
	recorder *recorder
}

func newPipeline(t *testing.T, st binder.Store, opts ...pipeline.Option) *testPipeline {
	t.Helper()

	if st == nil {
		st = newStore(t)
	}
	rec := &recorder{}
	pipe, err := pipeline.New(newCatalog(t, rec), st, newBinder(), append([]pipeline.Option{pipeline.WithLogger(discardLogger())}, opts...)...)
	require.NoError(t, err)

	return &testPipeline{Pipeline: pipe, store: st, recorder: rec}
}

func loadPipeline(t *testing.T, st binder.Store, doc string, opts ...pipeline.Option) *testPipeline {
	t.Helper()

	pipe := newPipeline(t, st, opts...)
	require.NoError(t, pipe.LoadFromJSON([]byte(doc)))

	return pipe
}

func analogValues(t *testing.T, value model.DataValue) []float32 {
	t.Helper()

	series, ok := value.AsAnalog()
	require.True(t, ok, "expected an analog time series, got %s", value.Kind())

	return series.Values
}
