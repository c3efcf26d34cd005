package def

import (
	"github.com/jsccast/yaml"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
)

// Def is the YAML representation of an automaton definition.
//
// The field meanings and defaulting rules match the text grammar.
type Def struct {
	States          []string                `json:"states" yaml:"states"`
	Alphabet        []string                `json:"alphabet" yaml:"alphabet"`
	InitialState    string                  `json:"initial_state,omitempty" yaml:"initial_state,omitempty"`
	FinalStates     []string                `json:"final_states,omitempty" yaml:"final_states,omitempty"`
	RejectingStates []string                `json:"rejecting_states,omitempty" yaml:"rejecting_states,omitempty"`
	Transitions     map[string][]Transition `json:"transition_function,omitempty" yaml:"transition_function,omitempty"`
}

// Transition is one move in the YAML form.
type Transition struct {
	Input    string   `json:"input" yaml:"input"`
	StackTop string   `json:"stack_top" yaml:"stack_top"`
	Next     string   `json:"next" yaml:"next"`
	Push     []string `json:"push,omitempty" yaml:"push,omitempty"`
}

// Config validates the Def and builds a core.Config from it.
func (d *Def) Config() (*core.Config, error) {
	ts := make(core.Transitions)
	for state, moves := range d.Transitions {
		if !member(d.States, state) {
			return nil, &UndeclaredState{State: state, Declared: d.States}
		}
		for _, mv := range moves {
			action := core.TransitionAction{Next: mv.Next}
			for _, token := range mv.Push {
				action.Push = append(action.Push, core.FromToken(token))
			}
			ts.Add(state, core.TransitionKey{
				Input:    core.FromToken(mv.Input),
				StackTop: core.FromToken(mv.StackTop),
			}, action)
		}
	}

	alphabet := make([]core.Symbol, len(d.Alphabet))
	for i, token := range d.Alphabet {
		alphabet[i] = core.FromToken(token)
	}

	return core.NewConfig(d.States, alphabet, ts, d.InitialState, d.FinalStates, d.RejectingStates)
}

// ToDef converts a Config back to the YAML form.  Reserved symbols
// come out as their names, so the result survives a YAML round trip.
func ToDef(cfg *core.Config) *Def {
	d := Def{
		States:       cfg.States,
		Alphabet:     make([]string, len(cfg.Alphabet)),
		InitialState: cfg.Initial,
	}
	for i, s := range cfg.Alphabet {
		d.Alphabet[i] = token(s)
	}
	for _, state := range cfg.States {
		if cfg.Final[state] {
			d.FinalStates = append(d.FinalStates, state)
		}
		if cfg.Rejecting[state] {
			d.RejectingStates = append(d.RejectingStates, state)
		}
	}

	for state, moves := range cfg.Transitions {
		for _, k := range cfg.Transitions.SortedKeys(state) {
			a := moves[k]
			mv := Transition{
				Input:    token(k.Input),
				StackTop: token(k.StackTop),
				Next:     a.Next,
			}
			for _, s := range a.Push {
				mv.Push = append(mv.Push, token(s))
			}
			if d.Transitions == nil {
				d.Transitions = make(map[string][]Transition)
			}
			d.Transitions[state] = append(d.Transitions[state], mv)
		}
	}

	return &d
}

func token(s core.Symbol) string {
	switch {
	case s.IsStackBottom():
		return "STACK_END"
	case s.IsInputEnd():
		return "INPUT_END"
	}
	return s.String()
}

// FromYAML reads the YAML definition form.
func FromYAML(src []byte) (*core.Config, error) {
	var d Def
	if err := yaml.Unmarshal(src, &d); err != nil {
		return nil, err
	}
	return d.Config()
}
