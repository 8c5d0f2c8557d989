package catalog

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

var (
	ErrEmptyName     = errors.New("operation name must be set")
	ErrDuplicateName = errors.New("operation already registered")
	ErrNilOperation  = errors.New("operation must be set")
)

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Catalog is the read-only index of available operations.
type Catalog struct {
	_ noCopy

	operations []Operation
	byName     map[string]Operation
	byKind     map[model.Kind][]string
}

// New registers the operations and builds the lookup indices.
func New(ops ...Operation) (*Catalog, error) {
	c := &Catalog{
		operations: make([]Operation, 0, len(ops)),
		byName:     make(map[string]Operation, len(ops)),
		byKind:     make(map[model.Kind][]string),
	}

	for i, op := range ops {
		if op == nil {
			return nil, errors.Wrapf(ErrNilOperation, "operation %d", i)
		}
		name := op.Name()
		if name == "" {
			return nil, errors.Wrapf(ErrEmptyName, "operation %d", i)
		}
		if _, ok := c.byName[name]; ok {
			return nil, errors.Wrapf(ErrDuplicateName, "operation %q", name)
		}
		c.byName[name] = op
		c.operations = append(c.operations, op)
	}

	for _, op := range c.operations {
		kind := op.TargetKind()
		c.byKind[kind] = append(c.byKind[kind], op.Name())
	}

	return c, nil
}

// OperationNamesFor returns the names of the operations targeting the kind held by value.
func (c *Catalog) OperationNamesFor(value model.DataValue) []string {
	if value.IsNone() {
		return []string{}
	}
	names := c.byKind[value.Kind()]
	out := make([]string, len(names))
	copy(out, names)

	return out
}

// FindByName returns the operation registered under name, or nil.
func (c *Catalog) FindByName(name string) Operation {
	if c == nil {
		return nil
	}

	return c.byName[name]
}

// Names returns every registered name in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.operations))
	for i, op := range c.operations {
		names[i] = op.Name()
	}

	return names
}

// Operations returns every registered operation in registration order.
func (c *Catalog) Operations() []Operation {
	out := make([]Operation, len(c.operations))
	copy(out, c.operations)

	return out
}

// Len returns the number of registered operations.
func (c *Catalog) Len() int {
	return len(c.operations)
}
