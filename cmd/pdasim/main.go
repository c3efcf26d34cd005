// A simple, single-automaton process that reads inputs from stdin and
// writes verdicts to stdout.
//
// Each line of stdin is one input.  By default the line's characters
// are the symbols; with -split, whitespace-separated tokens are the
// symbols (so multi-character symbols and the reserved names work).

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
	"github.com/HermanPlay/pushdown-automata-simulator/def"
	. "github.com/HermanPlay/pushdown-automata-simulator/util/testutil"
)

func main() {

	var (
		filename = flag.String("f", "", "definition filename")
		fromYAML = flag.Bool("yaml", false, "definition is YAML instead of definition text")

		split     = flag.Bool("split", false, "split input lines on whitespace into tokens")
		appendEnd = flag.Bool("append-end", false, "append the input-end marker to every input")

		diag = flag.Bool("d", false, "print step diagnostics")
		echo = flag.Bool("e", false, "echo input lines")
	)

	flag.Parse()

	src, err := os.ReadFile(*filename)
	if err != nil {
		panic(err)
	}

	var cfg *core.Config
	if *fromYAML {
		if cfg, err = def.FromYAML(src); err != nil {
			panic(err)
		}
	} else {
		var warnings []def.Warning
		if cfg, warnings, err = def.Parse(src); err != nil {
			panic(err)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
		}
	}

	m := core.NewMachine(cfg)

	in := bufio.NewReader(os.Stdin)
	for {
		line, err := in.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			panic(err)
		}
		line = strings.TrimRight(line, "\n")

		if *echo {
			fmt.Printf("in: %s\n", line)
		}

		var input []core.Symbol
		if *split {
			for _, token := range strings.Fields(line) {
				input = append(input, core.FromToken(token))
			}
		} else {
			input = core.Runes(line)
		}
		if *appendEnd {
			input = append(input, core.InputEnd)
		}

		res, err := m.Run(input)
		if err != nil {
			fmt.Printf("error: %s\n", err)
			continue
		}

		if *diag {
			fmt.Printf("# input %s\n", core.SymbolsString(input))
			for _, message := range res.Traces.Messages {
				fmt.Printf("#   %s\n", JS(message))
			}
		}

		fmt.Printf("%s\n", JS(map[string]interface{}{
			"input":    line,
			"accepted": res.Accepted,
			"reason":   res.Reason.String(),
			"consumed": res.Consumed,
		}))
	}
}
