// Package binder converts untyped JSON parameter values into the typed
// parameter structs of the transforms.
//
// A Binder holds one setter per (transform, parameter) pair. Setters are
// registered with the generic helpers RegisterBasic, RegisterEnum and
// RegisterDataRef, which build the conversion closures from a field accessor:
//
//	binder.RegisterBasic(b, "Scale", "gain", func(p *ScaleParams) *float64 { return &p.Gain })
//	binder.RegisterEnum(b, "Scale", "method", func(p *ScaleParams) *Method { return &p.Method }, methodNames)
//
// The Binder is populated once, before any pipeline runs. It carries no
// locking: concurrent registration is unsupported, concurrent Set calls are safe.
package binder
