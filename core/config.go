package core

import (
	"strings"
)

// Config is the immutable description of an automaton: the declared
// states, the input alphabet, the transition function, and the
// distinguished state sets.
//
// A Config carries no run state, so one Config can back any number of
// Machines, including Machines running concurrently.
type Config struct {
	// States is the declared state list.  Declaration order is
	// preserved for validation and display only.
	States []string `json:"states"`

	// Alphabet is the set of valid input symbols.
	Alphabet []Symbol `json:"alphabet"`

	// Transitions is the transition function.
	Transitions Transitions `json:"transitions"`

	// Initial is the state every run starts in.
	Initial string `json:"initialState"`

	// Final is the set of accepting states.
	Final map[string]bool `json:"finalStates"`

	// Rejecting is the set of rejecting states.  Final and
	// Rejecting should be disjoint; this constructor does not
	// enforce that, but tools.Analyze flags the overlap.
	Rejecting map[string]bool `json:"rejectingStates"`
}

// NewConfig builds a Config, applying the defaulting rules: an empty
// initial state means the first declared state, and an empty final
// set means the last declared state.
func NewConfig(states []string, alphabet []Symbol, ts Transitions, initial string, final, rejecting []string) (*Config, error) {
	if len(states) == 0 {
		return nil, NoStates
	}
	if initial == "" {
		initial = states[0]
	}
	if len(final) == 0 {
		final = []string{states[len(states)-1]}
	}
	if ts == nil {
		ts = make(Transitions)
	}
	return &Config{
		States:      states,
		Alphabet:    alphabet,
		Transitions: ts,
		Initial:     initial,
		Final:       stringSet(final),
		Rejecting:   stringSet(rejecting),
	}, nil
}

func stringSet(xs []string) map[string]bool {
	acc := make(map[string]bool, len(xs))
	for _, x := range xs {
		acc[x] = true
	}
	return acc
}

// InAlphabet reports whether the symbol is in the input alphabet.
//
// Alphabets are short, so a scan beats keeping a parallel set.
func (c *Config) InAlphabet(sym Symbol) bool {
	for _, a := range c.Alphabet {
		if a == sym {
			return true
		}
	}
	return false
}

// Declared reports whether the state appears in the declared state
// list.
func (c *Config) Declared(state string) bool {
	for _, s := range c.States {
		if s == state {
			return true
		}
	}
	return false
}

// setList filters the declared states down to the members of the
// given set, preserving declaration order.
func (c *Config) setList(set map[string]bool) []string {
	acc := make([]string, 0, len(set))
	for _, s := range c.States {
		if set[s] {
			acc = append(acc, s)
		}
	}
	return acc
}

// Definition renders the Config as definition text that def.Parse
// reads back to an equivalent Config (same (state, key) -> action
// triples, though not necessarily byte-identical to the original
// source).
func (c *Config) Definition() string {
	var b strings.Builder
	b.WriteString("states: " + strings.Join(c.States, ", ") + "\n")
	b.WriteString("alphabet: " + joinSymbols(c.Alphabet) + "\n")
	b.WriteString("initial_state: " + c.Initial + "\n")
	b.WriteString("final_states: " + strings.Join(c.setList(c.Final), ", ") + "\n")
	b.WriteString("rejecting_states: " + strings.Join(c.setList(c.Rejecting), ", ") + "\n")
	b.WriteString(c.Transitions.tableString(c.States))
	return b.String()
}

func (c *Config) String() string {
	return c.Definition()
}
