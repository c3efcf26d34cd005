package core

import (
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	tests := []struct {
		description string
		initial     string
		final       []string
		wantInitial string
		wantFinal   string
	}{
		{
			description: "explicit initial and final",
			initial:     "b",
			final:       []string{"a"},
			wantInitial: "b",
			wantFinal:   "a",
		},
		{
			description: "defaulted initial is the first state",
			final:       []string{"b"},
			wantInitial: "a",
			wantFinal:   "b",
		},
		{
			description: "defaulted final is the last state",
			initial:     "a",
			wantInitial: "a",
			wantFinal:   "c",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			cfg, err := NewConfig([]string{"a", "b", "c"}, Lits("x"), nil, tc.initial, tc.final, nil)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Initial != tc.wantInitial {
				t.Errorf("initial %s, want %s", cfg.Initial, tc.wantInitial)
			}
			if !cfg.Final[tc.wantFinal] || len(cfg.Final) != 1 {
				t.Errorf("final %v, want {%s}", cfg.Final, tc.wantFinal)
			}
		})
	}
}

func TestConfigNoStates(t *testing.T) {
	if _, err := NewConfig(nil, nil, nil, "", nil, nil); err != NoStates {
		t.Fatalf("got %v", err)
	}
}

func TestSymbolDistinctions(t *testing.T) {
	// A literal ">" is not the sentinel, even though both render
	// the same way.
	if Lit(">") == StackBottom {
		t.Fatal("literal '>' collided with the sentinel")
	}
	if Lit(">").String() != StackBottom.String() {
		t.Fatal("sentinel rendering changed")
	}

	// Definition tokens, though, always mean the reserved symbols.
	if FromToken(">") != StackBottom || FromToken("STACK_END") != StackBottom {
		t.Fatal("stack-bottom tokens not recognized")
	}
	if FromToken("<") != InputEnd || FromToken("INPUT_END") != InputEnd {
		t.Fatal("input-end tokens not recognized")
	}
}

func TestInAlphabet(t *testing.T) {
	cfg, err := NewConfig([]string{"a"}, append(Lits("0"), InputEnd), nil, "", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.InAlphabet(Lit("0")) || !cfg.InAlphabet(InputEnd) {
		t.Fatal("declared symbols not found")
	}
	if cfg.InAlphabet(Lit("1")) || cfg.InAlphabet(StackBottom) {
		t.Fatal("undeclared symbols found")
	}
}
