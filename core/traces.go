package core

// TracesInitialCap is the initial capacity for Traces buffers.
var TracesInitialCap = 16

// ToDo: Provide a configurable limit or implement a rolling buffer.

// Traces holds human-readable run diagnostics.
type Traces struct {
	Messages []interface{} `json:"messages,omitempty" yaml:",omitempty"`
}

// NewTraces creates an initialized Traces.
func NewTraces() *Traces {
	return &Traces{
		Messages: make([]interface{}, 0, TracesInitialCap),
	}
}

func (ts *Traces) Add(xs ...interface{}) {
	ts.Messages = append(ts.Messages, xs...)
}
