package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/HermanPlay/pushdown-automata-simulator/store"
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

func TestServiceOps(t *testing.T) {
	ctx := context.Background()

	s, err := NewService(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := s.Do(ctx, &SOp{Op: "load", Id: "1", Name: "anbn", Def: testDef})
	if res.Err != "" {
		t.Fatal(res.Err)
	}
	if res.Id != "1" || res.Op != "load" {
		t.Fatalf("echo %#v", res)
	}

	res = s.Do(ctx, &SOp{Op: "list"})
	if len(res.Names) != 1 || res.Names[0] != "anbn" {
		t.Fatalf("names %v", res.Names)
	}

	res = s.Do(ctx, &SOp{Op: "sim", Name: "anbn", Input: []string{"a", "a", "b", "b"}})
	if res.Err != "" {
		t.Fatal(res.Err)
	}
	if res.Accepted == nil || !*res.Accepted {
		t.Fatalf("verdict %#v", res)
	}
	if res.Consumed != 4 {
		t.Fatalf("consumed %d", res.Consumed)
	}

	res = s.Do(ctx, &SOp{Op: "sim", Name: "anbn", Input: []string{"a", "b", "a"}})
	if res.Accepted == nil || *res.Accepted {
		t.Fatalf("verdict %#v", res)
	}

	res = s.Do(ctx, &SOp{Op: "runs", Name: "anbn"})
	if res.Err == "" {
		t.Fatal("runs without storage should complain")
	}

	res = s.Do(ctx, &SOp{Op: "rem", Name: "anbn"})
	if res.Err != "" {
		t.Fatal(res.Err)
	}
	res = s.Do(ctx, &SOp{Op: "sim", Name: "anbn", Input: []string{"a"}})
	if res.Err == "" {
		t.Fatal("sim after rem should complain")
	}

	res = s.Do(ctx, &SOp{Op: "nope"})
	if res.Err == "" {
		t.Fatal("unknown op should complain")
	}
}

func TestServicePersistence(t *testing.T) {
	ctx := context.Background()

	filename := filepath.Join(t.TempDir(), "service.db")

	storage, err := store.NewStorage(filename)
	if err != nil {
		t.Fatal(err)
	}
	if err = storage.Open(); err != nil {
		t.Fatal(err)
	}

	s, err := NewService(ctx, storage)
	if err != nil {
		t.Fatal(err)
	}

	if res := s.Do(ctx, &SOp{Op: "load", Name: "anbn", Def: testDef}); res.Err != "" {
		t.Fatal(res.Err)
	}
	if res := s.Do(ctx, &SOp{Op: "sim", Name: "anbn", Input: []string{"a", "b"}}); res.Err != "" {
		t.Fatal(res.Err)
	}

	res := s.Do(ctx, &SOp{Op: "runs", Name: "anbn"})
	if res.Err != "" {
		t.Fatal(res.Err)
	}
	if len(res.Runs) != 1 || !res.Runs[0].Accepted {
		t.Fatalf("runs %#v", res.Runs)
	}

	if err := storage.Close(); err != nil {
		t.Fatal(err)
	}

	// A new service over the same file finds the definition.
	if err = storage.Open(); err != nil {
		t.Fatal(err)
	}
	defer storage.Close()

	again, err := NewService(ctx, storage)
	if err != nil {
		t.Fatal(err)
	}
	res = again.Do(ctx, &SOp{Op: "list"})
	if len(res.Names) != 1 || res.Names[0] != "anbn" {
		t.Fatalf("names after reload %v", res.Names)
	}
}
