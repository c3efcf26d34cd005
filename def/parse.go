// Package def parses automaton definitions: a line-oriented text
// grammar and an equivalent YAML form.
//
// The text grammar:
//
//	states: s0, s1, ...
//	alphabet: a, b, ...
//	initial_state: s0
//	final_states: sA, ...
//	rejecting_states: sR, ...
//	transition_function:
//	    s0:
//	        (a, >) -> s1 [>, a]
//
// Blank lines and lines starting with '#' are ignored.  The tokens
// STACK_END and INPUT_END (and the characters '>' and '<') denote the
// reserved symbols wherever a symbol is expected.
package def

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
)

// UndeclaredState is the fatal validation error for a transition
// block header naming a state outside the declared state list.
type UndeclaredState struct {
	State    string
	Declared []string
}

func (e *UndeclaredState) Error() string {
	return `state "` + e.State + `" not in states [` + strings.Join(e.Declared, ", ") + `]`
}

// Warning records a line the parser could not use.  A malformed
// transition line is skipped rather than fatal, but it should not
// vanish silently: a typo in a move would otherwise just change the
// language the automaton accepts.
type Warning struct {
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
	Msg  string `json:"msg" yaml:"msg"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Msg, w.Text)
}

var (
	stateHeader    = regexp.MustCompile(`^\w+:$`)
	transitionLine = regexp.MustCompile(`^\((.+), (.+)\) -> (\w+) \[(.*)\]$`)
)

// Parse reads the line-oriented grammar and builds a Config.
//
// The returned error is fatal (an undeclared state in a block header,
// or an empty state list).  Warnings report skipped lines.
func Parse(src []byte) (*core.Config, []Warning, error) {
	var (
		states    []string
		alphabet  []core.Symbol
		initial   string
		final     []string
		rejecting []string
		ts        = make(core.Transitions)
		warnings  []Warning
		current   string
	)

	for n, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "states:"):
			states = listAfterColon(line)
		case strings.HasPrefix(line, "alphabet:"):
			for _, token := range listAfterColon(line) {
				alphabet = append(alphabet, core.FromToken(token))
			}
		case strings.HasPrefix(line, "initial_state:"):
			initial = afterColon(line)
		case strings.HasPrefix(line, "final_states:"):
			final = listAfterColon(line)
		case strings.HasPrefix(line, "rejecting_states:"):
			rejecting = listAfterColon(line)
		case line == "transition_function:":
			current = ""
		case stateHeader.MatchString(line):
			current = line[:len(line)-1]
			if !member(states, current) {
				return nil, warnings, &UndeclaredState{State: current, Declared: states}
			}
		case current != "" && strings.Contains(line, "->"):
			m := transitionLine.FindStringSubmatch(line)
			if m == nil {
				warnings = append(warnings, Warning{Line: n + 1, Text: line, Msg: "malformed transition"})
				continue
			}
			key := core.TransitionKey{
				Input:    core.FromToken(m[1]),
				StackTop: core.FromToken(m[2]),
			}
			action := core.TransitionAction{Next: m[3]}
			if m[4] != "" {
				for _, token := range strings.Split(m[4], ",") {
					action.Push = append(action.Push, core.FromToken(strings.TrimSpace(token)))
				}
			}
			ts.Add(current, key, action)
		default:
			warnings = append(warnings, Warning{Line: n + 1, Text: line, Msg: "unrecognized line"})
		}
	}

	cfg, err := core.NewConfig(states, alphabet, ts, initial, final, rejecting)
	if err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

// ParseFile reads and parses a definition file.
func ParseFile(filename string) (*core.Config, []Warning, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	return Parse(src)
}

func afterColon(line string) string {
	_, rest, _ := strings.Cut(line, ":")
	return strings.TrimSpace(rest)
}

func listAfterColon(line string) []string {
	var acc []string
	for _, token := range strings.Split(afterColon(line), ",") {
		if token = strings.TrimSpace(token); token != "" {
			acc = append(acc, token)
		}
	}
	return acc
}

func member(xs []string, x string) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}
