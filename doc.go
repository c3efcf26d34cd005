// Package pda provides deterministic pushdown automaton machinery:
// a transition-table model, a simulation engine, and parsers for a
// small definition grammar.
//
// The core code is in package 'core', the definition parsers are in
// package 'def', and some command-line tools are in 'cmd'.
package pda
