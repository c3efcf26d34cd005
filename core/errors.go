package core

// These errors mean the automaton definition is at fault.  A rejected
// input is a false verdict, never an error.

import (
	"errors"
	"strconv"
)

// NoStates occurs when a Config is built with no declared states, so
// neither defaulting rule (first state, last state) can apply.
var NoStates = errors.New("no states")

// StackUnderflow occurs when a pop finds the stack empty: a chain of
// pure-pop moves went deeper than the sentinel allows.  This signals
// a malformed transition table, so it is surfaced as an error rather
// than folded into rejection.
type StackUnderflow struct {
	State    string
	Consumed int
}

func (e *StackUnderflow) Error() string {
	return `stack underflow in state "` + e.State + `" after ` +
		strconv.Itoa(e.Consumed) + ` symbols`
}
