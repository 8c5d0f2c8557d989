// Package ctxlog hands the run logger of a pipeline to the operations it
// executes.
//
// Execute stores a logger carrying the run_id attribute in the context passed
// to every Operation.Execute call. Operations log through FromContext to share
// the run attributes:
//
//	func (op *Scale) Execute(ctx context.Context, value model.DataValue, params model.Parameters, progress model.ProgressFunc) (model.DataValue, error) {
//		ctxlog.FromContext(ctx).Debug("Scaling series.", "gain", params.(*ScaleParams).Gain)
//		...
//	}
package ctxlog

import (
	"context"
	"log/slog"
)

type key struct{}

var loggerKey = key{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger of ctx, or slog.Default when ctx has none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return slog.Default()
}
