package core

// Machine is the mutable run state for one automaton: the current
// state and the stack, referencing a shared immutable Config.
//
// A Machine is not safe for concurrent use; Run mutates State and
// Stack in place.  Concurrent runs should each make their own Machine
// from the shared Config.
type Machine struct {
	// Config is the automaton description.  Never modified here.
	Config *Config `json:"-"`

	// State is the current state.
	State string `json:"state"`

	// Stack is the automaton's stack.  The top is the last
	// element.  It is seeded with the stack-bottom sentinel.
	Stack []Symbol `json:"stack"`
}

// NewMachine makes a Machine at the initial state with a stack
// containing exactly the sentinel.
func NewMachine(cfg *Config) *Machine {
	return &Machine{
		Config: cfg,
		State:  cfg.Initial,
		Stack:  []Symbol{StackBottom},
	}
}

// Reason says how a run arrived at its verdict.
type Reason int

const (
	// NotInAlphabet: an input symbol was outside the declared
	// alphabet.
	NotInAlphabet Reason = iota

	// NoTransition: no move for the (symbol, stack top) key.  Not
	// a fault; the input just has no applicable move.
	NoTransition

	// RejectingState: the machine entered a rejecting state with
	// input remaining or not.  Rejection is immediate and sticky.
	RejectingState

	// FinalState: the machine entered a final state before the
	// input ran out.
	FinalState

	// InputExhausted: the input ran out and the verdict came from
	// the end-of-input check: final state, or the stack-bottom
	// sentinel on top of the stack.
	InputExhausted

	// Underflow: a pop found the stack empty.  The automaton
	// definition, not the input, is at fault.
	Underflow
)

func (r Reason) String() string {
	switch r {
	case NotInAlphabet:
		return "symbol not in alphabet"
	case NoTransition:
		return "no transition"
	case RejectingState:
		return "rejecting state"
	case FinalState:
		return "final state"
	case InputExhausted:
		return "input exhausted"
	case Underflow:
		return "stack underflow"
	}
	return "unknown"
}

// Result reports one run.
type Result struct {
	// Accepted is the verdict.
	Accepted bool `json:"accepted"`

	// Reason says how the run ended.
	Reason Reason `json:"-"`

	// Consumed counts the input symbols that made it through a
	// transition.  A run that short-circuits leaves the rest of
	// the input unconsumed.
	Consumed int `json:"consumed"`

	// Traces holds step-by-step diagnostics.  Never affects the
	// verdict.
	Traces *Traces `json:"traces,omitempty"`
}

// Run decides acceptance of the input, consuming it symbol by symbol.
//
// The machine resets its state and stack first, so consecutive Runs
// on one Machine are independent and a repeated Run returns an
// identical result.
//
// A non-nil error means the automaton definition itself is broken: a
// chain of pure-pop moves went deeper than the sentinel allows.  A
// rejected input is a false verdict, not an error.
//
// The input-end marker is never appended here.  A transition keyed on
// InputEnd fires only when the caller includes the marker as part of
// the input sequence.
func (m *Machine) Run(input []Symbol) (*Result, error) {
	m.State = m.Config.Initial
	m.Stack = append(m.Stack[:0], StackBottom)

	res := &Result{Traces: NewTraces()}

	for _, sym := range input {
		if !m.Config.InAlphabet(sym) {
			res.Reason = NotInAlphabet
			res.Traces.Add(map[string]interface{}{
				"symbol": sym.String(),
				"error":  "not in alphabet",
			})
			return res, nil
		}

		// The pop is unconditional, even when the key it forms
		// matches nothing.
		if len(m.Stack) == 0 {
			res.Reason = Underflow
			err := &StackUnderflow{State: m.State, Consumed: res.Consumed}
			res.Traces.Add(map[string]interface{}{
				"error": err.Error(),
			})
			return res, err
		}
		top := m.Stack[len(m.Stack)-1]
		m.Stack = m.Stack[:len(m.Stack)-1]

		key := TransitionKey{Input: sym, StackTop: top}

		// A state missing from the transition function acts like
		// a state with no moves: the lookup misses and the input
		// is rejected.  Following a move to an undeclared state
		// therefore rejects on the next symbol instead of
		// crashing.
		action, have := m.Config.Transitions[m.State][key]
		if !have {
			res.Reason = NoTransition
			res.Traces.Add(map[string]interface{}{
				"state": m.State,
				"key":   key.String(),
				"error": "no transition",
			})
			return res, nil
		}

		m.State = action.Next
		m.Stack = append(m.Stack, action.Push...)
		res.Consumed++

		res.Traces.Add(map[string]interface{}{
			"key":   key.String(),
			"to":    m.State,
			"push":  SymbolsString(action.Push),
			"stack": SymbolsString(m.Stack),
		})

		// Rejection is checked first, so it wins when a state is
		// in both sets.
		if m.Config.Rejecting[m.State] {
			res.Reason = RejectingState
			return res, nil
		}
		if m.Config.Final[m.State] {
			res.Accepted = true
			res.Reason = FinalState
			return res, nil
		}
	}

	// Two independent ways to accept at end of input: a final
	// state, or the stack collapsed back to just the sentinel.
	// The second clause means an automaton can accept by empty
	// stack from a non-final state.
	res.Reason = InputExhausted
	if m.Config.Final[m.State] {
		res.Accepted = true
	} else if n := len(m.Stack); 0 < n && m.Stack[n-1] == StackBottom {
		res.Accepted = true
	}
	res.Traces.Add(map[string]interface{}{
		"state":    m.State,
		"stack":    SymbolsString(m.Stack),
		"accepted": res.Accepted,
	})

	return res, nil
}

// Simulate is Run reduced to the verdict.
func (m *Machine) Simulate(input []Symbol) (bool, error) {
	res, err := m.Run(input)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

// String dumps the current state, the stack, and the full transition
// table.  Diagnostics only; not a machine-readable contract.
func (m *Machine) String() string {
	return "state: " + m.State + ", stack: " + SymbolsString(m.Stack) + "\n" +
		m.Config.Transitions.tableString(m.Config.States)
}
