package core

import (
	"sort"
	"strings"
)

// TransitionKey is the (input symbol, stack top) pair used to look up
// the unique applicable move in a state.  The type is comparable, so
// structural equality and hashing come from Go map-key semantics.
type TransitionKey struct {
	Input    Symbol `json:"input"`
	StackTop Symbol `json:"stackTop"`
}

func (k TransitionKey) String() string {
	return "(" + k.Input.String() + ", " + k.StackTop.String() + ")"
}

// TransitionAction is the move for a key: the next state and the
// symbols to push.
//
// The push sequence is applied in list order, so the last pushed
// symbol ends up on top of the stack.  An empty sequence pushes
// nothing: a pure pop that shrinks the stack by one.
type TransitionAction struct {
	Next string   `json:"next"`
	Push []Symbol `json:"push,omitempty"`
}

func (a TransitionAction) String() string {
	return a.Next + " " + SymbolsString(a.Push)
}

// Transitions maps a state name to that state's moves.
//
// The automaton is deterministic: at most one action per (state,
// key).
type Transitions map[string]map[TransitionKey]TransitionAction

// Add registers one move, making the state's own map on demand.
func (ts Transitions) Add(state string, k TransitionKey, a TransitionAction) {
	moves, have := ts[state]
	if !have {
		moves = make(map[TransitionKey]TransitionAction, 8)
		ts[state] = moves
	}
	moves[k] = a
}

// Count returns the total number of moves.
func (ts Transitions) Count() int {
	n := 0
	for _, moves := range ts {
		n += len(moves)
	}
	return n
}

// SortedKeys returns a state's keys in a stable order.  Go maps don't
// preserve insertion order, so display output is sorted instead.
func (ts Transitions) SortedKeys(state string) []TransitionKey {
	moves := ts[state]
	keys := make([]TransitionKey, 0, len(moves))
	for k := range moves {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// tableString renders the transition function the way definition
// files write it: a 'state:' header followed by indented moves.
//
// States with moves follow the given declaration order; any stragglers
// (states that have moves but were never declared) come last, sorted.
func (ts Transitions) tableString(order []string) string {
	var b strings.Builder
	b.WriteString("transition_function:\n")

	rendered := make(map[string]bool, len(ts))
	render := func(state string) {
		if rendered[state] {
			return
		}
		rendered[state] = true
		moves, have := ts[state]
		if !have || len(moves) == 0 {
			return
		}
		b.WriteString("    " + state + ":\n")
		for _, k := range ts.SortedKeys(state) {
			a := moves[k]
			b.WriteString("        " + k.String() + " -> " + a.Next + " " + SymbolsString(a.Push) + "\n")
		}
	}

	for _, state := range order {
		render(state)
	}

	var stragglers []string
	for state := range ts {
		if !rendered[state] {
			stragglers = append(stragglers, state)
		}
	}
	sort.Strings(stragglers)
	for _, state := range stragglers {
		render(state)
	}

	return b.String()
}
