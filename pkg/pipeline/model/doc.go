// Package model provides the data structures shared by the pipeline packages.
// It defines the values exchanged between steps and the external store,
// the parsed step definition, the progress callbacks and the options
// that observe a pipeline run.
package model
