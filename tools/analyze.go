package tools

import (
	"sort"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
)

// ConfigAnalysis reports structural observations about an automaton:
// moves that point at undeclared states, states that can never be
// reached, overlap between the final and rejecting sets, end-marker
// moves that can never fire, and pure pops that leave the stack
// empty.
type ConfigAnalysis struct {
	cfg *core.Config

	// Errors are problems that make runs fail or behave
	// ambiguously.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	StateCount int `json:"stateCount" yaml:"stateCount"`
	MoveCount  int `json:"moveCount" yaml:"moveCount"`

	// MissingTargets are next-states not in the declared list.  A
	// run that follows such a move rejects on its next symbol.
	MissingTargets []string `json:"missingTargets,omitempty" yaml:"missingTargets,omitempty"`

	// Unreachable are declared states no move chain from the
	// initial state can enter.
	Unreachable []string `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`

	// Ambiguous are states in both the final and rejecting sets.
	// The engine resolves the ambiguity by checking rejection
	// first, but the definition is suspect.
	Ambiguous []string `json:"ambiguous,omitempty" yaml:"ambiguous,omitempty"`

	// DeadEndMarkers are moves keyed on the input-end marker when
	// the marker is not in the alphabet: any input containing the
	// marker is rejected before the move could fire.
	DeadEndMarkers []string `json:"deadEndMarkers,omitempty" yaml:"deadEndMarkers,omitempty"`

	// EmptyingPops are moves that pop the stack-bottom sentinel
	// and push nothing back.  After such a move the stack is
	// empty, and the next pop underflows.
	EmptyingPops []string `json:"emptyingPops,omitempty" yaml:"emptyingPops,omitempty"`
}

// Analyze scrutinizes the automaton's structure.  The verdicts are
// advisory; the engine itself validates nothing up front.
func Analyze(cfg *core.Config) (*ConfigAnalysis, error) {

	a := ConfigAnalysis{
		cfg:        cfg,
		StateCount: len(cfg.States),
		MoveCount:  cfg.Transitions.Count(),
		Errors:     make([]string, 0, 8),
	}

	missing := make(map[string]bool)
	markerInAlphabet := cfg.InAlphabet(core.InputEnd)

	for state, moves := range cfg.Transitions {
		for k, act := range moves {
			if !cfg.Declared(act.Next) {
				missing[act.Next] = true
			}
			if k.Input.IsInputEnd() && !markerInAlphabet {
				a.DeadEndMarkers = append(a.DeadEndMarkers, state+" "+k.String())
			}
			if k.StackTop.IsStackBottom() && len(act.Push) == 0 {
				a.EmptyingPops = append(a.EmptyingPops, state+" "+k.String())
			}
		}
	}
	a.MissingTargets = setToSlice(missing)
	sort.Strings(a.DeadEndMarkers)
	sort.Strings(a.EmptyingPops)

	// Reachability over next-state edges, ignoring stack contents,
	// so "unreachable" here is a conservative claim.
	reached := map[string]bool{cfg.Initial: true}
	frontier := []string{cfg.Initial}
	for 0 < len(frontier) {
		state := frontier[0]
		frontier = frontier[1:]
		for _, act := range cfg.Transitions[state] {
			if !reached[act.Next] {
				reached[act.Next] = true
				frontier = append(frontier, act.Next)
			}
		}
	}
	for _, state := range cfg.States {
		if !reached[state] {
			a.Unreachable = append(a.Unreachable, state)
		}
	}

	for _, state := range cfg.States {
		if cfg.Final[state] && cfg.Rejecting[state] {
			a.Ambiguous = append(a.Ambiguous, state)
		}
	}

	for _, target := range a.MissingTargets {
		a.Errors = append(a.Errors, `move target "`+target+`" is not a declared state`)
	}
	for _, move := range a.EmptyingPops {
		a.Errors = append(a.Errors, "move "+move+" pops the sentinel and pushes nothing back")
	}
	for _, state := range a.Ambiguous {
		a.Errors = append(a.Errors, `state "`+state+`" is both final and rejecting`)
	}

	return &a, nil
}

func setToSlice(m map[string]bool) []string {
	var list []string
	for key := range m {
		list = append(list, key)
	}
	sort.Strings(list)
	return list
}
