/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package expect is a tool for testing automaton definitions.
//
// You construct a Session, which names a definition and a list of
// test cases.  Then run the session to see if the automaton's
// verdicts agree with the expectations.
//
// Specifying what's expected can be simple, as in a literal verdict,
// or fairly fancy, as in ECMAScript code that computes whether a
// given input should be accepted.  A case can also ask for every
// distinct rearrangement of its input, which is handy for automata
// that only care about symbol counts.
//
// See ../cmd/pdatool for command-line use.
package expect

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dop251/goja"
	"github.com/jsccast/yaml"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
	"github.com/HermanPlay/pushdown-automata-simulator/def"
	"github.com/HermanPlay/pushdown-automata-simulator/util"
)

// Case is one expectation about an automaton's verdict.
type Case struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Input is the input as a string of single-character symbols.
	Input string `json:"input,omitempty" yaml:"input,omitempty"`

	// Symbols is the input as explicit tokens.  Use this form for
	// multi-character symbols or for the reserved names STACK_END
	// and INPUT_END.  When Symbols is given, Input is ignored.
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`

	// AppendEnd appends the input-end marker to the input.  The
	// engine never does that on its own.
	AppendEnd bool `json:"appendEnd,omitempty" yaml:"appendEnd,omitempty"`

	// Accepted is the expected verdict.
	Accepted *bool `json:"accepted,omitempty" yaml:"accepted,omitempty"`

	// Oracle is optional ECMAScript source that computes the
	// expected verdict.  The code sees the variable "input" bound
	// to the input symbols (as strings), and its value is the
	// expected verdict.  When Oracle is given, Accepted is
	// ignored.
	Oracle string `json:"oracle,omitempty" yaml:"oracle,omitempty"`

	// Permute runs the case once for every distinct rearrangement
	// of the input instead of once.  Pair with an Oracle unless
	// all arrangements really share one verdict.
	Permute bool `json:"permute,omitempty" yaml:"permute,omitempty"`
}

// Session is mostly a sequence of Cases against one definition.
type Session struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Definition is inline automaton definition text.
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`

	// DefinitionFile names a definition file to read when
	// Definition is empty.
	DefinitionFile string `json:"definitionFile,omitempty" yaml:"definitionFile,omitempty"`

	// Cases are run in order.
	Cases []Case `json:"cases" yaml:"cases"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Failure reports one case whose verdict disagreed with the
// expectation.
type Failure struct {
	Doc      string   `json:"doc,omitempty" yaml:"doc,omitempty"`
	Input    []string `json:"input" yaml:"input"`
	Got      bool     `json:"got" yaml:"got"`
	Want     bool     `json:"want" yaml:"want"`
	Reason   string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Consumed int      `json:"consumed" yaml:"consumed"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("input [%s]: got %v (%s at symbol %d), want %v",
		strings.Join(f.Input, " "), f.Got, f.Reason, f.Consumed, f.Want)
}

// LoadSession parses a YAML session.
func LoadSession(bs []byte) (*Session, error) {
	var s Session
	if err := yaml.Unmarshal(bs, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSessionFile reads and parses a YAML session file.
func LoadSessionFile(filename string) (*Session, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadSession(bs)
}

// Config resolves the session's definition, inline or from a file.
func (s *Session) Config() (*core.Config, error) {
	src := []byte(s.Definition)
	if s.Definition == "" {
		if s.DefinitionFile == "" {
			return nil, fmt.Errorf("session has no definition")
		}
		bs, err := os.ReadFile(s.DefinitionFile)
		if err != nil {
			return nil, err
		}
		src = bs
	}
	cfg, warnings, err := def.Parse(src)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		util.Logf("expect: %s", w.String())
	}
	return cfg, nil
}

// Run processes all the Cases in the Session.
//
// The returned Failures are disagreements between the automaton and
// the expectations.  The error is for trouble running the session
// itself: a bad definition, bad oracle code, or a fatal engine error
// like stack underflow.
func (s *Session) Run(ctx context.Context) ([]Failure, error) {

	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	m := core.NewMachine(cfg)

	var failures []Failure

	for _, c := range s.Cases {
		inputs := [][]core.Symbol{c.symbols()}
		if c.Permute {
			inputs = Permutations(inputs[0])
		}

		for _, input := range inputs {
			select {
			case <-ctx.Done():
				return failures, ctx.Err()
			default:
			}

			if c.AppendEnd {
				input = append(input, core.InputEnd)
			}

			want := false
			if c.Oracle != "" {
				if want, err = oracle(ctx, c.Oracle, input); err != nil {
					return failures, fmt.Errorf("oracle for case %q: %w", c.Doc, err)
				}
			} else if c.Accepted != nil {
				want = *c.Accepted
			}

			res, err := m.Run(input)
			if err != nil {
				return failures, fmt.Errorf("case %q: %w", c.Doc, err)
			}

			if s.Verbose {
				util.Logf("expect: [%s] accepted=%v (%s)",
					core.SymbolsString(input), res.Accepted, res.Reason)
			}

			if res.Accepted != want {
				failures = append(failures, Failure{
					Doc:      c.Doc,
					Input:    symbolStrings(input),
					Got:      res.Accepted,
					Want:     want,
					Reason:   res.Reason.String(),
					Consumed: res.Consumed,
				})
			}
		}
	}

	return failures, nil
}

func (c *Case) symbols() []core.Symbol {
	if 0 < len(c.Symbols) {
		acc := make([]core.Symbol, len(c.Symbols))
		for i, token := range c.Symbols {
			acc[i] = core.FromToken(token)
		}
		return acc
	}
	return core.Runes(c.Input)
}

func symbolStrings(input []core.Symbol) []string {
	acc := make([]string, len(input))
	for i, s := range input {
		acc[i] = s.String()
	}
	return acc
}

// oracle evaluates ECMAScript with "input" bound to the input symbols
// and interprets the result as the expected verdict.
func oracle(ctx context.Context, src string, input []core.Symbol) (bool, error) {
	vm := goja.New()

	if err := vm.Set("input", symbolStrings(input)); err != nil {
		return false, err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt("canceled")
		case <-done:
		}
	}()

	v, err := vm.RunString(src)
	if err != nil {
		return false, err
	}

	return v.ToBoolean(), nil
}

// Permutations generates the distinct arrangements of the given
// symbols.  Repeated symbols do not inflate the count: an input of
// nine symbols drawn from two values yields at most 512 arrangements
// and usually far fewer.
func Permutations(symbols []core.Symbol) [][]core.Symbol {

	counts := make(map[string]int)
	rep := make(map[string]core.Symbol)
	for _, s := range symbols {
		counts[s.String()]++
		rep[s.String()] = s
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var acc [][]core.Symbol
	current := make([]core.Symbol, 0, len(symbols))

	var recur func()
	recur = func() {
		if len(current) == len(symbols) {
			arrangement := make([]core.Symbol, len(current))
			copy(arrangement, current)
			acc = append(acc, arrangement)
			return
		}
		for _, key := range keys {
			if counts[key] == 0 {
				continue
			}
			counts[key]--
			current = append(current, rep[key])
			recur()
			current = current[:len(current)-1]
			counts[key]++
		}
	}
	recur()

	return acc
}
