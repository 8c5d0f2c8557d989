// Package pipeline runs a declared sequence of named transforms over the
// datasets of an external store.
//
// A pipeline is loaded from a JSON document (YAML and HCL front-ends funnel
// into the same path) listing ordered steps. Each step names a transform of
// the catalog, an input key, an optional output key, untyped parameters and an
// integer phase:
//
//	{
//	  "metadata": {"version": "1", "variables": {"channel": "whisker_1"}},
//	  "steps": [
//	    {"step_id": "filter", "transform_name": "Filter", "input_key": "${channel}", "phase": 0},
//	    {"step_id": "scale", "transform_name": "Scale", "input_key": "filter_output",
//	     "output_key": "Scaled", "parameters": {"gain": 2}, "phase": 1}
//	  ]
//	}
//
// Phases run one after the other in ascending order. Steps sharing a phase run
// concurrently and the next phase only starts once all of them finished. A
// failing step stops the run at the end of its phase. Steps without output key
// keep their result under "<step_id>_output" for the rest of the run only.
//
// Loading fails fast on malformed documents and reports every validation
// problem at once. Parameter binding never fails a step: unknown or ill-typed
// parameters are logged and the operation default is kept.
package pipeline
