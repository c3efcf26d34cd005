package main

import (
	"github.com/HermanPlay/pushdown-automata-simulator/store"
)

// SOp is a Service Operation.  One JSON object per operation, over
// the WebSocket or the TCP line protocol.
type SOp struct {
	// Op names the operation: "load", "rem", "list", "sim", or
	// "runs".
	Op string `json:"op"`

	// Id is an opaque, client-chosen string echoed in the result.
	Id string `json:"id,omitempty" yaml:",omitempty"`

	// Name is the automaton's name (load, rem, sim, runs).
	Name string `json:"name,omitempty" yaml:",omitempty"`

	// Def is the definition source for load.
	Def string `json:"def,omitempty" yaml:",omitempty"`

	// YAML says Def is the YAML form instead of definition text.
	YAML bool `json:"yaml,omitempty" yaml:",omitempty"`

	// Input is the input for sim, as explicit tokens.  The
	// reserved names STACK_END and INPUT_END work here.
	Input []string `json:"input,omitempty" yaml:",omitempty"`

	// AppendEnd appends the input-end marker to the input.
	AppendEnd bool `json:"appendEnd,omitempty" yaml:",omitempty"`
}

// SResult is the response to one SOp.
type SResult struct {
	Id string `json:"id,omitempty" yaml:",omitempty"`
	Op string `json:"op"`

	// Err is the string representation of an error (if any) that
	// resulted from processing the operation.
	Err string `json:"err,omitempty" yaml:",omitempty"`

	// Accepted is the verdict for sim.  A pointer so that errors
	// don't look like rejections.
	Accepted *bool `json:"accepted,omitempty" yaml:",omitempty"`

	Reason   string `json:"reason,omitempty" yaml:",omitempty"`
	Consumed int    `json:"consumed,omitempty" yaml:",omitempty"`

	// Warnings are parse warnings from load.
	Warnings []string `json:"warnings,omitempty" yaml:",omitempty"`

	// Names is the roster for list.
	Names []string `json:"names,omitempty" yaml:",omitempty"`

	// Runs are the stored records for runs.
	Runs []*store.RunRecord `json:"runs,omitempty" yaml:",omitempty"`
}

func erred(res *SResult, err error) *SResult {
	if err != nil {
		res.Err = err.Error()
	}
	return res
}
