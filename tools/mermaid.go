package tools

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
)

type MermaidOpts struct {
	// ShowMoves will result in an edge label listing the moves
	// between the two states.
	ShowMoves bool `json:"showMoves"`

	// FinalFill is the fill color for final states.
	FinalFill string `json:"finalFill,omitempty"`

	// RejectingFill is the fill color for rejecting states.
	RejectingFill string `json:"rejectingFill,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given automaton's transition graph.
func Mermaid(cfg *core.Config, w io.WriteCloser, opts *MermaidOpts) error {

	if opts == nil {
		opts = &MermaidOpts{
			ShowMoves:     true,
			FinalFill:     "#52aa5e",
			RejectingFill: "#f98b8b",
		}
	}

	fmt.Fprintf(w, "graph TB\n")

	nids := make(map[string]string)
	num := 0

	node := func(name string) string {
		if nid, already := nids[name]; already {
			return nid
		}
		num++
		nid := fmt.Sprintf("n%d", num)
		nids[name] = nid

		if cfg.Final[name] {
			fmt.Fprintf(w, "  %s((\"%s\"))\n", nid, name)
			if opts.FinalFill != "" {
				fmt.Fprintf(w, "  style %s fill:%s\n", nid, opts.FinalFill)
			}
		} else if cfg.Rejecting[name] {
			fmt.Fprintf(w, "  %s[\"%s\"]\n", nid, name)
			if opts.RejectingFill != "" {
				fmt.Fprintf(w, "  style %s fill:%s\n", nid, opts.RejectingFill)
			}
		} else {
			fmt.Fprintf(w, "  %s(\"%s\")\n", nid, name)
		}

		return nid
	}

	for _, name := range cfg.States {
		node(name)
	}

	for _, state := range cfg.States {
		moves := cfg.Transitions[state]
		if len(moves) == 0 {
			continue
		}
		nid := node(state)

		lines := make(map[string][]string)
		for _, k := range sortedKeys(moves) {
			a := moves[k]
			lines[a.Next] = append(lines[a.Next], k.String()+" "+core.SymbolsString(a.Push))
		}

		var targets []string
		for target := range lines {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		for _, target := range targets {
			to := node(target)

			label := ""
			if opts.ShowMoves {
				bs, err := yaml.Marshal(lines[target])
				if err != nil {
					return err
				}
				text := strings.Replace(string(bs), `"`, `'`, -1)
				text = strings.TrimRight(text, "\n")
				label = fmt.Sprintf(`-- "<pre>%s</pre>"`, text)
			}

			fmt.Fprintf(w, "  %s %s --> %s\n", nid, label, to)
		}
	}

	fmt.Fprintf(w, "\n")

	return w.Close()
}

func sortedKeys(moves map[core.TransitionKey]core.TransitionAction) []core.TransitionKey {
	keys := make([]core.TransitionKey, 0, len(moves))
	for k := range moves {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
