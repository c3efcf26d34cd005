package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
)

// Dot makes a Graphviz dot file for the given automaton.
//
// The optional fromState and toState can be names of states during a
// transition.  If non-empty, then the toState will be red, and the
// edge from fromState to toState will be highlighted.
func Dot(cfg *core.Config, w io.WriteCloser, fromState, toState string) error {

	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=LR,nodesep=0.3,ranksep=0.6]
  node [shape="circle" style="filled"]
  edge [fontsize = "12"]
`)

	node := func(name string) {
		shape := "circle"
		fillcolor := "#99ddc8"
		style := "filled"
		if cfg.Final[name] {
			shape = "doublecircle"
			fillcolor = "#52aa5e"
		}
		if cfg.Rejecting[name] {
			fillcolor = "#f98b8b"
		}
		color := "black"
		if toState == name {
			color = "red"
		}
		if name == cfg.Initial {
			style += ",bold"
		}
		fmt.Fprintf(w, "  %s [shape=\"%s\", style=\"%s\", color=\"%s\", fillcolor=\"%s\"]\n",
			name, shape, style, color, fillcolor)
	}

	seen := make(map[string]bool, len(cfg.States))
	for _, name := range cfg.States {
		seen[name] = true
		node(name)
	}

	// Moves can point at undeclared states.  Give them a node so
	// the problem is visible in the graph.
	var stragglers []string
	for _, moves := range cfg.Transitions {
		for _, a := range moves {
			if !seen[a.Next] {
				seen[a.Next] = true
				stragglers = append(stragglers, a.Next)
			}
		}
	}
	sort.Strings(stragglers)
	for _, name := range stragglers {
		node(name)
	}

	// One edge per (state, target) pair, one move per label line.
	for _, state := range cfg.States {
		moves := cfg.Transitions[state]
		if len(moves) == 0 {
			continue
		}

		labels := make(map[string][]string)
		var keys []core.TransitionKey
		for k := range moves {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
		for _, k := range keys {
			a := moves[k]
			labels[a.Next] = append(labels[a.Next],
				escape(k.String()+" "+core.SymbolsString(a.Push)))
		}

		var targets []string
		for target := range labels {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		for _, target := range targets {
			color := "black"
			if fromState == state && toState == target {
				color = "red"
			}
			fmt.Fprintf(w, "  %s -> %s [ color=\"%s\" label = \"%s\" ]\n",
				state, target, color, strings.Join(labels[target], `\n`))
		}
	}

	fmt.Fprintf(w, "}\n")
	return w.Close()
}

// PNG generates a PNG image based on output from Dot.
//
// This function will write two files: basename.dot and basename.png,
// where the basename is the given string.
func PNG(cfg *core.Config, basename string, fromState, toState string) (string, error) {
	dotname := basename + ".dot"
	pngname := basename + ".png"

	dotfile, err := os.Create(dotname)
	if err != nil {
		return pngname, err
	}
	if err := Dot(cfg, dotfile, fromState, toState); err != nil {
		return pngname, err
	}
	cmd := "dot -Tpng " + dotname + " > " + pngname
	if err := exec.Command("bash", "-c", cmd).Run(); err != nil {
		return pngname, err
	}
	return pngname, nil
}

func escape(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}
