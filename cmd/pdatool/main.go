// pdatool works on automaton definitions: conversions, diagrams, and
// structural analysis.
//
// Definitions arrive on stdin (definition text unless the subcommand
// says otherwise); output goes to stdout.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jsccast/yaml"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
	"github.com/HermanPlay/pushdown-automata-simulator/def"
	"github.com/HermanPlay/pushdown-automata-simulator/expect"
	"github.com/HermanPlay/pushdown-automata-simulator/tools"
)

func main() {

	if len(os.Args) < 2 {
		Usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "dump":
		// Parse and re-render: a normalizer and a syntax check
		// in one.
		cfg := read(os.Stdin)
		fmt.Printf("%s", cfg.Definition())

	case "deftoyaml":
		cfg := read(os.Stdin)
		bs, err := yaml.Marshal(def.ToDef(cfg))
		if err != nil {
			fatal(err)
		}
		if _, err := os.Stdout.Write(bs); err != nil {
			fatal(err)
		}

	case "yamltodef":
		bs, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal(err)
		}
		cfg, err := def.FromYAML(bs)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("%s", cfg.Definition())

	case "dot":
		flags := flag.NewFlagSet("dot", flag.ExitOnError)
		fromState := flags.String("from", "", "highlight the edge from this state")
		toState := flags.String("to", "", "highlight this state (and the edge to it)")
		if err := flags.Parse(os.Args[2:]); err != nil {
			fatal(err)
		}

		cfg := read(os.Stdin)
		if err := tools.Dot(cfg, os.Stdout, *fromState, *toState); err != nil {
			fatal(err)
		}

	case "mermaid":
		cfg := read(os.Stdin)
		if err := tools.Mermaid(cfg, os.Stdout, nil); err != nil {
			fatal(err)
		}

	case "html":
		flags := flag.NewFlagSet("html", flag.ExitOnError)
		name := flags.String("name", "automaton", "page title")
		if err := flags.Parse(os.Args[2:]); err != nil {
			fatal(err)
		}

		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal(err)
		}
		cfg, warnings, err := def.Parse(src)
		if err != nil {
			fatal(err)
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
		}
		if err := tools.RenderConfigPage(cfg, *name, tools.CommentDoc(src), os.Stdout, nil); err != nil {
			fatal(err)
		}

	case "analyze":
		cfg := read(os.Stdin)
		a, err := tools.Analyze(cfg)
		if err != nil {
			fatal(err)
		}
		bs, err := yaml.Marshal(a)
		if err != nil {
			fatal(err)
		}
		if _, err := os.Stdout.Write(bs); err != nil {
			fatal(err)
		}
		if 0 < len(a.Errors) {
			os.Exit(1)
		}

	case "expect":
		flags := flag.NewFlagSet("expect", flag.ExitOnError)
		filename := flags.String("f", "", "session filename (YAML)")
		verbose := flags.Bool("v", false, "log each run")
		if err := flags.Parse(os.Args[2:]); err != nil {
			fatal(err)
		}

		s, err := expect.LoadSessionFile(*filename)
		if err != nil {
			fatal(err)
		}
		s.Verbose = *verbose

		failures, err := s.Run(context.Background())
		if err != nil {
			fatal(err)
		}
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "failed: %s\n", f.Error())
		}
		if 0 < len(failures) {
			os.Exit(1)
		}
		fmt.Printf("happy\n")

	default:
		fmt.Printf("Unknown subcommand \"%s\"\n", os.Args[1])
		Usage()
		os.Exit(1)
	}
}

func read(in io.Reader) *core.Config {
	src, err := io.ReadAll(in)
	if err != nil {
		fatal(err)
	}
	cfg, warnings, err := def.Parse(src)
	if err != nil {
		fatal(err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}
	return cfg
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func Usage() {
	fmt.Printf(`Subcommands:

  dump               parse a definition and write it back normalized
  deftoyaml          definition text to YAML form
  yamltodef          YAML form to definition text
  dot [-from -to]    Graphviz dot for the transition graph
  mermaid            Mermaid for the transition graph
  html [-name]       HTML page for the definition
  analyze            structural analysis (YAML report)
  expect -f FILE     run a YAML expectation session

All subcommands except expect read a definition on stdin.
`)
}
