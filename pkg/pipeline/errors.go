package pipeline

import (
	"strings"

	"github.com/pkg/errors"
)

//go:generate go tool stringer -type=ErrorKind

// ErrorKind classifies pipeline errors.
type ErrorKind int

const (
	// ParseError is a malformed document or a step missing a required field.
	ParseError ErrorKind = iota + 1
	// ValidationError gathers every problem found in a parsed pipeline.
	ValidationError
	// LookupError is an unknown transform or an unresolved input at run time.
	LookupError
	// ApplicabilityError is an operation refusing its input.
	ApplicabilityError
	// ParameterBindingError is a parameter that could not be set. It is never fatal.
	ParameterBindingError
	// ExecutionError is an operation failing, panicking or returning no data.
	ExecutionError
)

var (
	ErrCatalogMustBeSet = errors.New("catalog must be set")
	ErrStoreMustBeSet   = errors.New("store must be set")
	ErrBinderMustBeSet  = errors.New("binder must be set")

	ErrStepsMissing = errors.New("pipeline document must contain a 'steps' array")
	ErrInvalidStep  = errors.New("invalid step")
	ErrValidation   = errors.New("pipeline validation failed")

	ErrTransformNotFound = errors.New("not found in registry")
	ErrInputNotFound     = errors.New("input data not found")
	ErrCannotApply       = errors.New("cannot be applied to input data")
	ErrNullResult        = errors.New("transform execution returned null result")
	ErrStepPanicked      = errors.New("step execution error")
)

// Error is the error returned by loads and recorded in step results.
type Error struct {
	Kind ErrorKind
	// StepID is the failing step, empty for document level errors.
	StepID string
	// Problems lists every validation problem.
	Problems []string
	Err      error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.StepID != "" {
		sb.WriteString("step '" + e.StepID + "': ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString(e.Kind.String())
	}
	if len(e.Problems) > 0 {
		sb.WriteString(":\n  - ")
		sb.WriteString(strings.Join(e.Problems, "\n  - "))
	}

	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in the chain of err.
func KindOf(err error) (ErrorKind, bool) {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Kind, true
	}

	return 0, false
}

func newError(kind ErrorKind, stepID string, err error) *Error {
	return &Error{Kind: kind, StepID: stepID, Err: err}
}
