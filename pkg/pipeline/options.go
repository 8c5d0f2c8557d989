package pipeline

import (
	"log/slog"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

// Option configures a Pipeline.
type Option func(p *Pipeline)

// WithLogger sets the logger used for load diagnostics and run events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithOptions registers options observing every run, such as measures or drawers.
func WithOptions(opts ...model.PipelineOption) Option {
	return func(p *Pipeline) {
		p.opts = append(p.opts, opts...)
	}
}

// WithoutVariableSubstitution disables the expansion of ${name} references
// to metadata.variables.
func WithoutVariableSubstitution() Option {
	return func(p *Pipeline) {
		p.substituteVariables = false
	}
}
