// Package registry keeps named automata for shared use.
//
// A Config is immutable, so the registry hands configurations out
// directly; every simulation gets its own Machine, which keeps
// concurrent runs from sharing mutable state.
package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
)

// NotFound occurs when a name has no automaton.
var NotFound = errors.New("not found")

// Registry maps names to automaton configurations.
type Registry struct {
	sync.RWMutex

	automata map[string]*core.Config
}

func NewRegistry() *Registry {
	return &Registry{
		automata: make(map[string]*core.Config, 8),
	}
}

// Add registers (or replaces) an automaton under the given name.
func (r *Registry) Add(name string, cfg *core.Config) {
	r.Lock()
	r.automata[name] = cfg
	r.Unlock()
}

// Rem removes the named automaton, reporting whether it existed.
func (r *Registry) Rem(name string) bool {
	r.Lock()
	_, have := r.automata[name]
	delete(r.automata, name)
	r.Unlock()
	return have
}

// Find returns the named automaton's configuration.
func (r *Registry) Find(name string) (*core.Config, bool) {
	r.RLock()
	cfg, have := r.automata[name]
	r.RUnlock()
	return cfg, have
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.RLock()
	acc := make([]string, 0, len(r.automata))
	for name := range r.automata {
		acc = append(acc, name)
	}
	r.RUnlock()
	sort.Strings(acc)
	return acc
}

// Copy returns a snapshot of the roster.  The Configs themselves are
// shared; they are immutable.
func (r *Registry) Copy() map[string]*core.Config {
	r.RLock()
	acc := make(map[string]*core.Config, len(r.automata))
	for name, cfg := range r.automata {
		acc[name] = cfg
	}
	r.RUnlock()
	return acc
}

// Run simulates the input on a fresh Machine for the named automaton.
func (r *Registry) Run(name string, input []core.Symbol) (*core.Result, error) {
	cfg, have := r.Find(name)
	if !have {
		return nil, NotFound
	}
	return core.NewMachine(cfg).Run(input)
}
