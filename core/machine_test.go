package core

import (
	"errors"
	"strings"
	"testing"
)

// twiceZeros is the worked example: accepts binary strings with
// exactly twice as many 0s as 1s.  The '<' marker is in the alphabet,
// but the harness never sends it; acceptance comes from the
// empty-stack criterion.
func twiceZeros(t *testing.T) *Config {
	ts := make(Transitions)

	ts.Add("q0", TransitionKey{Lit("0"), StackBottom}, TransitionAction{"q1", []Symbol{StackBottom, Lit("0")}})
	ts.Add("q0", TransitionKey{Lit("0"), Lit("0")}, TransitionAction{"q1", Lits("0", "0")})
	ts.Add("q0", TransitionKey{Lit("0"), Lit("1")}, TransitionAction{"q1", nil})
	ts.Add("q0", TransitionKey{Lit("1"), StackBottom}, TransitionAction{"q0", []Symbol{StackBottom, Lit("1")}})
	ts.Add("q0", TransitionKey{Lit("1"), Lit("0")}, TransitionAction{"q0", nil})
	ts.Add("q0", TransitionKey{Lit("1"), Lit("1")}, TransitionAction{"q0", Lits("1", "1")})
	ts.Add("q0", TransitionKey{InputEnd, StackBottom}, TransitionAction{"qA", []Symbol{StackBottom}})
	ts.Add("q0", TransitionKey{InputEnd, Lit("0")}, TransitionAction{"qR", nil})
	ts.Add("q0", TransitionKey{InputEnd, Lit("1")}, TransitionAction{"qR", nil})

	ts.Add("q1", TransitionKey{Lit("0"), StackBottom}, TransitionAction{"q0", []Symbol{StackBottom}})
	ts.Add("q1", TransitionKey{Lit("0"), Lit("0")}, TransitionAction{"q0", Lits("0")})
	ts.Add("q1", TransitionKey{Lit("0"), Lit("1")}, TransitionAction{"q0", Lits("1")})
	ts.Add("q1", TransitionKey{Lit("1"), StackBottom}, TransitionAction{"q1", []Symbol{StackBottom, Lit("1")}})
	ts.Add("q1", TransitionKey{Lit("1"), Lit("0")}, TransitionAction{"q1", nil})
	ts.Add("q1", TransitionKey{Lit("1"), Lit("1")}, TransitionAction{"q1", Lits("1", "1")})
	ts.Add("q1", TransitionKey{InputEnd, StackBottom}, TransitionAction{"qR", []Symbol{StackBottom}})
	ts.Add("q1", TransitionKey{InputEnd, Lit("0")}, TransitionAction{"qR", Lits("0")})
	ts.Add("q1", TransitionKey{InputEnd, Lit("1")}, TransitionAction{"qR", Lits("1")})

	cfg, err := NewConfig(
		[]string{"q0", "q1", "qR", "qA"},
		append(Lits("0", "1"), InputEnd),
		ts,
		"q0",
		[]string{"qA"},
		[]string{"qR"})
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

// permutations generates every distinct arrangement of the given
// multiset.
func permutations(symbols []string) [][]string {
	counts := make(map[string]int, len(symbols))
	var uniq []string
	for _, s := range symbols {
		if counts[s] == 0 {
			uniq = append(uniq, s)
		}
		counts[s]++
	}

	var (
		acc [][]string
		cur = make([]string, 0, len(symbols))
		rec func()
	)
	rec = func() {
		if len(cur) == len(symbols) {
			acc = append(acc, append([]string(nil), cur...))
			return
		}
		for _, s := range uniq {
			if counts[s] == 0 {
				continue
			}
			counts[s]--
			cur = append(cur, s)
			rec()
			cur = cur[:len(cur)-1]
			counts[s]++
		}
	}
	rec()
	return acc
}

func TestTwiceZerosPermutations(t *testing.T) {
	m := NewMachine(twiceZeros(t))

	perms := permutations([]string{"1", "1", "0", "0", "0", "0", "1", "0", "0"})
	if len(perms) != 84 {
		// 9! / (6! 3!)
		t.Fatalf("got %d distinct permutations", len(perms))
	}

	for _, perm := range perms {
		input := Runes(strings.Join(perm, ""))
		zeros, ones := 0, 0
		for _, s := range perm {
			if s == "0" {
				zeros++
			} else {
				ones++
			}
		}
		want := zeros == 2*ones

		got, err := m.Simulate(input)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("input %s: got %v, want %v", strings.Join(perm, ""), got, want)
		}
	}
}

func TestOutOfAlphabet(t *testing.T) {
	m := NewMachine(twiceZeros(t))

	res, err := m.Run(Runes("0120"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted {
		t.Fatal("accepted an input with a symbol outside the alphabet")
	}
	if res.Reason != NotInAlphabet {
		t.Fatalf("got reason %v", res.Reason)
	}
	if res.Consumed != 2 {
		t.Fatalf("consumed %d symbols", res.Consumed)
	}
}

func TestShortCircuitReject(t *testing.T) {
	m := NewMachine(twiceZeros(t))

	// "0<" drives q1 into qR.  The trailing "00" would otherwise
	// matter, but rejection is sticky and immediate.
	res, err := m.Run(Runes("0<00"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted {
		t.Fatal("accepted after reaching a rejecting state")
	}
	if res.Reason != RejectingState {
		t.Fatalf("got reason %v", res.Reason)
	}
	if res.Consumed != 2 {
		t.Fatalf("consumed %d symbols, want 2", res.Consumed)
	}
}

func TestShortCircuitAccept(t *testing.T) {
	m := NewMachine(twiceZeros(t))

	// The explicit marker sends q0 straight to qA; the trailing
	// "0" is never consumed.
	res, err := m.Run(Runes("<0"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatal("rejected despite reaching a final state")
	}
	if res.Reason != FinalState {
		t.Fatalf("got reason %v", res.Reason)
	}
	if res.Consumed != 1 {
		t.Fatalf("consumed %d symbols, want 1", res.Consumed)
	}
}

func TestAcceptByEmptyStack(t *testing.T) {
	m := NewMachine(twiceZeros(t))

	// "100" ends in q0, which is neither final nor rejecting, with
	// the stack collapsed back to the sentinel.
	res, err := m.Run(Runes("100"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatal("empty-stack acceptance did not fire")
	}
	if res.Reason != InputExhausted {
		t.Fatalf("got reason %v", res.Reason)
	}
	if m.Config.Final[m.State] {
		t.Fatalf("ended in final state %s; the test wants the empty-stack path", m.State)
	}
}

func TestRepeatedRuns(t *testing.T) {
	m := NewMachine(twiceZeros(t))

	for _, input := range []string{"100", "0<00", "11", "", "010"} {
		first, err := m.Simulate(Runes(input))
		if err != nil {
			t.Fatal(err)
		}
		second, err := m.Simulate(Runes(input))
		if err != nil {
			t.Fatal(err)
		}
		if first != second {
			t.Errorf("input %q: %v then %v", input, first, second)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	m := NewMachine(twiceZeros(t))

	// Zero 0s, zero 1s: accepted, via the sentinel still on top.
	got, err := m.Simulate(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("rejected the empty input")
	}
}

func TestStackUnderflow(t *testing.T) {
	ts := make(Transitions)
	// Pops the sentinel and pushes nothing back, so the next pop
	// finds the stack empty.
	ts.Add("s0", TransitionKey{Lit("a"), StackBottom}, TransitionAction{"s0", nil})

	cfg, err := NewConfig([]string{"s0", "sA"}, Lits("a"), ts, "s0", []string{"sA"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMachine(cfg)

	res, err := m.Run(Runes("aa"))
	if err == nil {
		t.Fatal("no error from a pop on an empty stack")
	}
	var underflow *StackUnderflow
	if !errors.As(err, &underflow) {
		t.Fatalf("got %T: %v", err, err)
	}
	if underflow.Consumed != 1 {
		t.Fatalf("underflow after %d symbols, want 1", underflow.Consumed)
	}
	if res == nil || res.Reason != Underflow {
		t.Fatalf("got result %v", res)
	}
}

func TestUndeclaredNextState(t *testing.T) {
	ts := make(Transitions)
	ts.Add("s0", TransitionKey{Lit("a"), StackBottom}, TransitionAction{"ghost", []Symbol{StackBottom}})

	cfg, err := NewConfig([]string{"s0", "sA"}, Lits("a"), ts, "s0", []string{"sA"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMachine(cfg)

	// The move to "ghost" is taken; the next lookup misses, so the
	// input is rejected rather than crashing.
	res, err := m.Run(Runes("aa"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted {
		t.Fatal("accepted via an undeclared state")
	}
	if res.Reason != NoTransition {
		t.Fatalf("got reason %v", res.Reason)
	}
	if m.State != "ghost" {
		t.Fatalf("ended in %s", m.State)
	}
}

func TestNoAutoAppendedMarker(t *testing.T) {
	ts := make(Transitions)
	ts.Add("s0", TransitionKey{Lit("a"), StackBottom}, TransitionAction{"s0", Lits("x")})
	ts.Add("s0", TransitionKey{InputEnd, Lit("x")}, TransitionAction{"sA", Lits("x")})

	cfg, err := NewConfig([]string{"s0", "sA"}, append(Lits("a"), InputEnd), ts, "s0", []string{"sA"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMachine(cfg)

	// Without the explicit marker the end-marker move never fires.
	got, err := m.Simulate(Runes("a"))
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("the engine appended the input-end marker on its own")
	}

	got, err = m.Simulate([]Symbol{Lit("a"), InputEnd})
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("the explicit marker did not reach the end-marker move")
	}
}
