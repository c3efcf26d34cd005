package registry

import (
	"reflect"
	"sync"
	"testing"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
	"github.com/HermanPlay/pushdown-automata-simulator/def"
)

var testDef = `
states: s0, sA
alphabet: a, b
final_states: sA
transition_function:
    s0:
        (a, >) -> s0 [>, a]
        (a, a) -> s0 [a, a]
        (b, a) -> s0 []
        (b, >) -> sA [>]
`

func testConfig(t *testing.T) *core.Config {
	cfg, warnings, err := def.Parse([]byte(testDef))
	if err != nil {
		t.Fatal(err)
	}
	if 0 < len(warnings) {
		t.Fatalf("warnings: %v", warnings)
	}
	return cfg
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Add("matcher", testConfig(t))

	if _, have := r.Find("matcher"); !have {
		t.Fatal("lost the added automaton")
	}
	if _, have := r.Find("nope"); have {
		t.Fatal("found an automaton that was never added")
	}
	if names := r.Names(); !reflect.DeepEqual(names, []string{"matcher"}) {
		t.Fatalf("names %v", names)
	}

	snapshot := r.Copy()
	r.Add("other", testConfig(t))
	if len(snapshot) != 1 {
		t.Fatalf("snapshot grew: %v", snapshot)
	}
	r.Rem("other")

	res, err := r.Run("matcher", core.Runes("aabb"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatal("rejected aabb")
	}

	if _, err = r.Run("nope", nil); err != NotFound {
		t.Fatalf("got %v", err)
	}

	if !r.Rem("matcher") {
		t.Fatal("Rem lost the automaton")
	}
	if r.Rem("matcher") {
		t.Fatal("Rem found a removed automaton")
	}
}

func TestConcurrentRuns(t *testing.T) {
	r := NewRegistry()
	r.Add("matcher", testConfig(t))

	// Each Run gets its own Machine, so parallel simulations on
	// one shared Config must not interfere.
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		accept := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			input := "aabb"
			if !accept {
				input = "ab" + "a" // ends with a surplus a
			}
			for j := 0; j < 50; j++ {
				res, err := r.Run("matcher", core.Runes(input))
				if err != nil {
					t.Error(err)
					return
				}
				if res.Accepted != accept {
					t.Errorf("input %q: got %v, want %v", input, res.Accepted, accept)
					return
				}
			}
		}()
	}
	wg.Wait()
}
