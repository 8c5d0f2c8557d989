package pipeline_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/binder"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/catalog"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/store"
)

type gainParams struct {
	Gain float64
}

type gain struct{}

func (gain) Name() string                        { return "Gain" }
func (gain) TargetKind() model.Kind              { return model.KindAnalogTimeSeries }
func (gain) CanApply(value model.DataValue) bool { return value.Kind() == model.KindAnalogTimeSeries }
func (gain) DefaultParameters() model.Parameters { return &gainParams{Gain: 1} }
func (gain) Execute(_ context.Context, value model.DataValue, params model.Parameters, _ model.ProgressFunc) (model.DataValue, error) {
	in, _ := value.AsAnalog()
	g := params.(*gainParams).Gain

	out := &model.AnalogTimeSeries{Times: in.Times, Values: make([]float32, len(in.Values))}
	for i, v := range in.Values {
		out.Values[i] = v * float32(g)
	}

	return model.Analog(out), nil
}

func (gain) RegisterParameters(b *binder.Binder) {
	binder.RegisterBasic(b, "Gain", "gain", func(p *gainParams) *float64 { return &p.Gain })
}

func ExamplePipeline_Execute() {
	cat, err := catalog.New(gain{})
	if err != nil {
		panic(err)
	}

	st := store.NewMemoryStore()
	st.Set("voltage", model.Analog(&model.AnalogTimeSeries{Values: []float32{1, 2, 3}, Times: []int64{0, 10, 20}}))

	pipe, err := pipeline.New(cat, st, binder.New(gain{}), pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		panic(err)
	}

	err = pipe.LoadFromJSON([]byte(`{
	  "metadata": {"variables": {"channel": "voltage"}},
	  "steps": [
	    {"step_id": "double", "transform_name": "Gain", "input_key": "${channel}", "parameters": {"gain": 2}},
	    {"step_id": "negate", "transform_name": "Gain", "input_key": "double_output", "output_key": "result", "parameters": {"gain": -1}, "phase": 1}
	  ]
	}`))
	if err != nil {
		panic(err)
	}

	res := pipe.Execute(context.Background(), nil)
	fmt.Println("success:", res.Success, "steps:", res.StepsCompleted)

	value, _ := st.Get("result")
	series, _ := value.AsAnalog()
	fmt.Println("result:", series.Values)

	// Output:
	// success: true steps: 2
	// result: [-2 -4 -6]
}
