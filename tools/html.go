package tools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	md "github.com/russross/blackfriday/v2"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
	"github.com/HermanPlay/pushdown-automata-simulator/def"
)

// RenderConfigHTML writes an HTML fragment for the automaton: the doc
// text rendered as Markdown, the state roster, and the transition
// table.
func RenderConfigHTML(cfg *core.Config, doc string, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	if doc != "" {
		f(`<div class="automatonDoc doc">%s</div>`, md.Run([]byte(doc)))
	}

	f(`<div class="alphabet">alphabet: <code>%s</code></div>`,
		html.EscapeString(symbolList(cfg.Alphabet)))

	f(`<div class="states"><table>`)
	for _, state := range cfg.States {
		f(`<tr class="state"><td><span id="%s" class="stateName">%s</span>%s</td><td>`,
			state, state, badges(cfg, state))

		moves := cfg.Transitions[state]
		if 0 < len(moves) {
			f(`<table class="moves">`)
			for _, k := range sortedKeys(moves) {
				a := moves[k]
				f(`<tr><td><code>%s</code></td><td>&rarr;</td>`+
					`<td><a href="#%s"><code>%s</code></a></td><td><code>%s</code></td></tr>`,
					html.EscapeString(k.String()),
					a.Next, a.Next,
					html.EscapeString(core.SymbolsString(a.Push)))
			}
			f(`</table>`)
		}
		f(`</td></tr>`)
	}
	f(`</table></div>`)

	return nil
}

// RenderConfigPage writes a complete HTML page for the automaton.
func RenderConfigPage(cfg *core.Config, name, doc string, out io.Writer, cssFiles []string) error {

	if cssFiles == nil {
		cssFiles = []string{"/static/pda-html.css"}
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, html.EscapeString(name))

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, html.EscapeString(name))

	if err := RenderConfigHTML(cfg, doc, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}

// ReadAndRenderPage parses a definition file and renders its page.
// The file's '#' comment lines become the doc text.
func ReadAndRenderPage(filename string, out io.Writer, cssFiles []string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	cfg, _, err := def.Parse(src)
	if err != nil {
		return err
	}
	return RenderConfigPage(cfg, filename, CommentDoc(src), out, cssFiles)
}

// CommentDoc extracts the '#' comment lines from definition text,
// joined as one Markdown string.
func CommentDoc(src []byte) string {
	var acc []string
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			acc = append(acc, strings.TrimSpace(strings.TrimPrefix(line, "#")))
		}
	}
	return strings.Join(acc, "\n")
}

func symbolList(symbols []core.Symbol) string {
	acc := make([]string, len(symbols))
	for i, s := range symbols {
		acc[i] = s.String()
	}
	return strings.Join(acc, ", ")
}

func badges(cfg *core.Config, state string) string {
	var acc []string
	if state == cfg.Initial {
		acc = append(acc, "initial")
	}
	if cfg.Final[state] {
		acc = append(acc, "final")
	}
	if cfg.Rejecting[state] {
		acc = append(acc, "rejecting")
	}
	if len(acc) == 0 {
		return ""
	}
	return ` <span class="badges">(` + strings.Join(acc, ", ") + `)</span>`
}
