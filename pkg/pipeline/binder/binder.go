package binder

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

var (
	ErrUnknownParameter = errors.New("no setter registered")
	ErrParametersType   = errors.New("unexpected parameters type")
	ErrTypeMismatch     = errors.New("json value does not match field type")
	ErrOutOfRange       = errors.New("value out of range")
	ErrUnknownEnumValue = errors.New("unknown enum value")
	ErrDataNotFound     = errors.New("referenced data not found")
	ErrDataKind         = errors.New("referenced data has unexpected kind")
	ErrStoreMustBeSet   = errors.New("store must be set")
)

// Store is the keyed repository of datasets shared with the pipeline.
type Store interface {
	Get(key string) (model.DataValue, bool)
	Set(key string, value model.DataValue)
}

// Setter assigns a JSON value to one field of a parameter object.
type Setter func(params model.Parameters, raw json.RawMessage, store Store) error

// Registrar contributes setters to a Binder.
type Registrar interface {
	RegisterParameters(b *Binder)
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc func(b *Binder)

func (f RegistrarFunc) RegisterParameters(b *Binder) { f(b) }

// Binder maps (transform, parameter) pairs to setters.
type Binder struct {
	setters map[string]map[string]Setter
}

// New creates a Binder and runs every registrar against it.
func New(registrars ...Registrar) *Binder {
	b := &Binder{
		setters: make(map[string]map[string]Setter),
	}
	for _, r := range registrars {
		if r != nil {
			r.RegisterParameters(b)
		}
	}

	return b
}

// Register adds a setter. It panics if the pair is already registered.
func (b *Binder) Register(transform, param string, setter Setter) {
	params, ok := b.setters[transform]
	if !ok {
		params = make(map[string]Setter)
		b.setters[transform] = params
	}
	if _, exists := params[param]; exists {
		panic(fmt.Sprintf("parameter setter '%s' already registered for transform '%s'", param, transform))
	}
	params[param] = setter
}

// Set converts raw and assigns it to the named field of params.
func (b *Binder) Set(transform string, params model.Parameters, param string, raw json.RawMessage, store Store) error {
	setter, ok := b.setters[transform][param]
	if !ok {
		return errors.Wrapf(ErrUnknownParameter, "transform '%s', parameter '%s'", transform, param)
	}

	err := setter(params, raw, store)
	if err != nil {
		return errors.Wrapf(err, "unable to set parameter '%s' of transform '%s'", param, transform)
	}

	return nil
}

// Has reports whether a setter exists for the pair.
func (b *Binder) Has(transform, param string) bool {
	_, ok := b.setters[transform][param]

	return ok
}

// Parameters returns the sorted parameter names registered for transform.
func (b *Binder) Parameters(transform string) []string {
	names := make([]string, 0, len(b.setters[transform]))
	for name := range b.setters[transform] {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func fieldOf[P, F any](params model.Parameters, field func(*P) *F) (*F, error) {
	p, ok := params.(*P)
	if !ok || p == nil {
		return nil, errors.Wrapf(ErrParametersType, "expected %T, got %T", (*P)(nil), params)
	}

	return field(p), nil
}
