// Package catalog indexes the transforms available to a pipeline.
//
// A Catalog is built once from a fixed set of operations and is read-only
// afterwards, so it can be shared by every goroutine of a run without locking.
package catalog
