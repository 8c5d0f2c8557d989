package pipeline_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline"
)

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  *pipeline.Error
		want string
	}{
		"step error": {
			err:  &pipeline.Error{Kind: pipeline.LookupError, StepID: "a", Err: pipeline.ErrInputNotFound},
			want: "step 'a': input data not found",
		},
		"document error": {
			err:  &pipeline.Error{Kind: pipeline.ParseError, Err: pipeline.ErrStepsMissing},
			want: "pipeline document must contain a 'steps' array",
		},
		"problems": {
			err:  &pipeline.Error{Kind: pipeline.ValidationError, Err: pipeline.ErrValidation, Problems: []string{"first", "second"}},
			want: "pipeline validation failed:\n  - first\n  - second",
		},
		"no cause": {
			err:  &pipeline.Error{Kind: pipeline.ExecutionError},
			want: "ExecutionError",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	wrapped := errors.Wrap(&pipeline.Error{Kind: pipeline.ApplicabilityError, Err: pipeline.ErrCannotApply}, "step failed")

	kind, ok := pipeline.KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, pipeline.ApplicabilityError, kind)
	assert.ErrorIs(t, wrapped, pipeline.ErrCannotApply)

	_, ok = pipeline.KindOf(assert.AnError)
	assert.False(t, ok)
	_, ok = pipeline.KindOf(nil)
	assert.False(t, ok)
}

func TestErrorKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ParseError", pipeline.ParseError.String())
	assert.Equal(t, "ParameterBindingError", pipeline.ParameterBindingError.String())
	assert.Equal(t, "ErrorKind(0)", pipeline.ErrorKind(0).String())
}
