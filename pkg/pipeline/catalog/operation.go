package catalog

import (
	"context"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

// Operation is a transform targeting one data kind.
type Operation interface {
	// Name is the unique name steps refer to.
	Name() string
	// TargetKind is the kind of input the operation is listed under.
	TargetKind() model.Kind
	// CanApply reports whether the operation accepts the given value.
	CanApply(value model.DataValue) bool
	// DefaultParameters returns a fresh parameter object with default values.
	DefaultParameters() model.Parameters
	// Execute runs the transform. progress may be nil. ctx carries the run
	// logger, see ctxlog.FromContext.
	Execute(ctx context.Context, value model.DataValue, params model.Parameters, progress model.ProgressFunc) (model.DataValue, error)
}
