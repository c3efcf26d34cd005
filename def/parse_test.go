package def

import (
	"errors"
	"reflect"
	"testing"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
)

func parseTestFile(t *testing.T) (*core.Config, []Warning) {
	cfg, warnings, err := ParseFile("testdata/twice.pda")
	if err != nil {
		t.Fatal(err)
	}
	return cfg, warnings
}

func TestParseFile(t *testing.T) {
	cfg, warnings := parseTestFile(t)

	if 0 < len(warnings) {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if want := []string{"q0", "q1", "qR", "qA"}; !reflect.DeepEqual(cfg.States, want) {
		t.Fatalf("states %v", cfg.States)
	}
	if cfg.Initial != "q0" {
		t.Fatalf("initial %s", cfg.Initial)
	}
	if !cfg.Final["qA"] || !cfg.Rejecting["qR"] {
		t.Fatalf("final %v, rejecting %v", cfg.Final, cfg.Rejecting)
	}
	if !cfg.InAlphabet(core.InputEnd) {
		t.Fatal("the '<' in the alphabet should be the input-end marker")
	}
	if n := cfg.Transitions.Count(); n != 18 {
		t.Fatalf("got %d moves", n)
	}

	// The reserved-name substitution: STACK_END in a key and in a
	// push list.
	a, have := cfg.Transitions["q0"][core.TransitionKey{Input: core.Lit("0"), StackTop: core.StackBottom}]
	if !have {
		t.Fatal("missing (0, >) in q0")
	}
	if a.Next != "q1" || len(a.Push) != 2 || a.Push[0] != core.StackBottom || a.Push[1] != core.Lit("0") {
		t.Fatalf("got action %v", a)
	}

	// An empty push list is a pure pop.
	a, have = cfg.Transitions["q0"][core.TransitionKey{Input: core.Lit("0"), StackTop: core.Lit("1")}]
	if !have {
		t.Fatal("missing (0, 1) in q0")
	}
	if len(a.Push) != 0 {
		t.Fatalf("got push %v", a.Push)
	}
}

func TestParsedSimulation(t *testing.T) {
	cfg, _ := parseTestFile(t)
	m := core.NewMachine(cfg)

	for _, tc := range []struct {
		input    string
		accepted bool
	}{
		{"", true},
		{"100", true},
		{"010", true},
		{"001", true},
		{"0", false},
		{"11", false},
		{"110000100", true},
		{"10010010", false},
		{"001001", true},
	} {
		got, err := m.Simulate(core.Runes(tc.input))
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.accepted {
			t.Errorf("input %q: got %v, want %v", tc.input, got, tc.accepted)
		}
	}
}

// triples flattens a transition function for order-free comparison.
func triples(cfg *core.Config) map[string]string {
	acc := make(map[string]string)
	for state, moves := range cfg.Transitions {
		for k, a := range moves {
			acc[state+" "+k.String()] = a.String()
		}
	}
	return acc
}

func TestRoundTrip(t *testing.T) {
	cfg, _ := parseTestFile(t)

	again, warnings, err := Parse([]byte(cfg.Definition()))
	if err != nil {
		t.Fatal(err)
	}
	if 0 < len(warnings) {
		t.Fatalf("warnings on re-parse: %v", warnings)
	}
	if !reflect.DeepEqual(triples(cfg), triples(again)) {
		t.Fatal("the rendered definition parsed to a different transition table")
	}
	if again.Initial != cfg.Initial ||
		!reflect.DeepEqual(again.Final, cfg.Final) ||
		!reflect.DeepEqual(again.Rejecting, cfg.Rejecting) {
		t.Fatal("the rendered definition parsed to different state sets")
	}
}

func TestUndeclaredStateHeader(t *testing.T) {
	src := `
states: a, b
alphabet: x
transition_function:
    c:
        (x, >) -> a [>]
`
	_, _, err := Parse([]byte(src))
	if err == nil {
		t.Fatal("no error for an undeclared block header")
	}
	var undeclared *UndeclaredState
	if !errors.As(err, &undeclared) {
		t.Fatalf("got %T: %v", err, err)
	}
	if undeclared.State != "c" {
		t.Fatalf("blamed state %q", undeclared.State)
	}
	if !reflect.DeepEqual(undeclared.Declared, []string{"a", "b"}) {
		t.Fatalf("declared list %v", undeclared.Declared)
	}
}

func TestMalformedTransitionWarning(t *testing.T) {
	src := `
# A comment and the blank line above produce no warnings.
states: a, b
alphabet: x
transition_function:
    a:
        (x, > -> b [>]
        (x, >) -> b [>]
`
	cfg, warnings, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got warnings %v", warnings)
	}
	if warnings[0].Msg != "malformed transition" {
		t.Fatalf("got warning %v", warnings[0])
	}
	// The well-formed line still contributed its move.
	if n := cfg.Transitions.Count(); n != 1 {
		t.Fatalf("got %d moves", n)
	}
}

func TestParseDefaults(t *testing.T) {
	src := `
states: a, b, c
alphabet: x
`
	cfg, _, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Initial != "a" {
		t.Fatalf("initial %s", cfg.Initial)
	}
	if !cfg.Final["c"] || len(cfg.Final) != 1 {
		t.Fatalf("final %v", cfg.Final)
	}
}

func TestFromYAML(t *testing.T) {
	src := `
states: [s0, sA]
alphabet: ["a", "<"]
initial_state: s0
final_states: [sA]
transition_function:
  s0:
    - input: "a"
      stack_top: STACK_END
      next: s0
      push: [STACK_END, "a"]
    - input: INPUT_END
      stack_top: "a"
      next: sA
`
	cfg, err := FromYAML([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	m := core.NewMachine(cfg)

	got, err := m.Simulate([]core.Symbol{core.Lit("a"), core.InputEnd})
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("rejected a<")
	}
}

func TestToDefRoundTrip(t *testing.T) {
	cfg, _ := parseTestFile(t)

	again, err := ToDef(cfg).Config()
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(triples(cfg), triples(again)) {
		t.Fatal("moves changed in the YAML round trip")
	}
	if !reflect.DeepEqual(cfg.States, again.States) ||
		!reflect.DeepEqual(cfg.Alphabet, again.Alphabet) ||
		cfg.Initial != again.Initial ||
		!reflect.DeepEqual(cfg.Final, again.Final) ||
		!reflect.DeepEqual(cfg.Rejecting, again.Rejecting) {
		t.Fatal("declarations changed in the YAML round trip")
	}
}

func TestFromYAMLUndeclared(t *testing.T) {
	src := `
states: [s0]
alphabet: ["a"]
transition_function:
  ghost:
    - input: "a"
      stack_top: STACK_END
      next: s0
`
	if _, err := FromYAML([]byte(src)); err == nil {
		t.Fatal("no error for an undeclared transition state")
	}
}
