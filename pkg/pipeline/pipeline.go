package pipeline

import (
	"encoding/json"
	"log/slog"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/binder"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/catalog"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
	"github.com/askiada/go-transform-pipeline/pkg/pipeline/store"
)

// Pipeline is an ordered list of steps bound to a catalog and a store.
// A Pipeline must not be loaded or executed from several goroutines at once.
type Pipeline struct {
	catalog *catalog.Catalog
	store   binder.Store
	binder  *binder.Binder
	logger  *slog.Logger
	opts    []model.PipelineOption

	substituteVariables bool

	steps    []model.Step
	metadata json.RawMessage
	// ephemeral holds the outputs of steps without output key for one run.
	ephemeral *store.MemoryStore
}

// New creates an empty pipeline.
func New(cat *catalog.Catalog, st binder.Store, bnd *binder.Binder, opts ...Option) (*Pipeline, error) {
	if cat == nil {
		return nil, ErrCatalogMustBeSet
	}
	if st == nil {
		return nil, ErrStoreMustBeSet
	}
	if bnd == nil {
		return nil, ErrBinderMustBeSet
	}

	pipe := &Pipeline{
		catalog:             cat,
		store:               st,
		binder:              bnd,
		logger:              slog.Default(),
		substituteVariables: true,
		metadata:            emptyObject(),
		ephemeral:           store.NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(pipe)
	}

	return pipe, nil
}

// Clear drops the steps, the metadata and the outputs of the last run.
func (p *Pipeline) Clear() {
	p.steps = nil
	p.metadata = emptyObject()
	p.ephemeral.Reset()
}

// Steps returns a copy of the parsed steps.
func (p *Pipeline) Steps() []model.Step {
	out := make([]model.Step, len(p.steps))
	copy(out, p.steps)

	return out
}

// Metadata returns the metadata object as loaded.
func (p *Pipeline) Metadata() json.RawMessage {
	return append(json.RawMessage(nil), p.metadata...)
}

// EphemeralOutput returns an output kept for the current run only.
func (p *Pipeline) EphemeralOutput(key string) (model.DataValue, bool) {
	return p.ephemeral.Get(key)
}

func emptyObject() json.RawMessage {
	return json.RawMessage(`{}`)
}
