package core

import (
	"encoding/json"
	"strings"
)

// A Symbol is an atomic token drawn from the input alphabet or the
// stack alphabet.
//
// Two symbols are reserved: the stack-bottom sentinel (written '>' in
// definition files) and the input-end marker (written '<').  The
// reserved symbols are not the literal '>' and '<' characters, so a
// Symbol is a small tagged value rather than a bare string.
type Symbol struct {
	kind symbolKind
	text string
}

type symbolKind int

const (
	literalSymbol symbolKind = iota
	stackBottomSymbol
	inputEndSymbol
)

// StackBottom is the sentinel that seeds the bottom of every stack.
// Finding it on top of the stack after the input is exhausted is one
// of the two acceptance criteria.
var StackBottom = Symbol{kind: stackBottomSymbol}

// InputEnd is the reserved marker for "no more input".
//
// The engine never appends this marker itself.  A transition keyed on
// InputEnd fires only when the caller puts the marker in the input
// sequence.
var InputEnd = Symbol{kind: inputEndSymbol}

// Lit makes a literal Symbol with the given text.
func Lit(text string) Symbol {
	return Symbol{kind: literalSymbol, text: text}
}

// Lits makes literal Symbols with the given texts.
func Lits(texts ...string) []Symbol {
	acc := make([]Symbol, len(texts))
	for i, text := range texts {
		acc[i] = Lit(text)
	}
	return acc
}

// FromToken maps a definition token to a Symbol.
//
// The names STACK_END and INPUT_END and the characters '>' and '<'
// all denote the reserved symbols.  Any other token is literal.
func FromToken(token string) Symbol {
	switch token {
	case "STACK_END", ">":
		return StackBottom
	case "INPUT_END", "<":
		return InputEnd
	}
	return Lit(token)
}

// Runes explodes a string into one Symbol per rune (via FromToken, so
// '>' and '<' become the reserved symbols).
func Runes(s string) []Symbol {
	acc := make([]Symbol, 0, len(s))
	for _, r := range s {
		acc = append(acc, FromToken(string(r)))
	}
	return acc
}

// IsStackBottom reports whether the symbol is the stack-bottom
// sentinel.
func (s Symbol) IsStackBottom() bool {
	return s.kind == stackBottomSymbol
}

// IsInputEnd reports whether the symbol is the input-end marker.
func (s Symbol) IsInputEnd() bool {
	return s.kind == inputEndSymbol
}

// String renders the symbol the way definition files spell it.
func (s Symbol) String() string {
	switch s.kind {
	case stackBottomSymbol:
		return ">"
	case inputEndSymbol:
		return "<"
	}
	return s.text
}

func (s Symbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Symbol) UnmarshalJSON(bs []byte) error {
	var token string
	if err := json.Unmarshal(bs, &token); err != nil {
		return err
	}
	*s = FromToken(token)
	return nil
}

func (s Symbol) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Symbol) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var token string
	if err := unmarshal(&token); err != nil {
		return err
	}
	*s = FromToken(token)
	return nil
}

// SymbolsString renders a symbol sequence like "[>, 0]".
func SymbolsString(symbols []Symbol) string {
	var b strings.Builder
	b.WriteString("[")
	for i, s := range symbols {
		if 0 < i {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	b.WriteString("]")
	return b.String()
}

// joinSymbols renders a symbol sequence like "0, 1, <" (no brackets).
func joinSymbols(symbols []Symbol) string {
	acc := make([]string, len(symbols))
	for i, s := range symbols {
		acc[i] = s.String()
	}
	return strings.Join(acc, ", ")
}
