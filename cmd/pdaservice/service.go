package main

import (
	"context"
	"fmt"
	"time"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
	"github.com/HermanPlay/pushdown-automata-simulator/def"
	"github.com/HermanPlay/pushdown-automata-simulator/registry"
	"github.com/HermanPlay/pushdown-automata-simulator/store"
	"github.com/HermanPlay/pushdown-automata-simulator/util"
)

// Service hosts a registry of automata behind the WebSocket and TCP
// endpoints, with optional persistence.
type Service struct {
	Debug bool

	registry *registry.Registry

	// storage is optional.  When present, loaded definitions and
	// run records survive restarts.
	storage *store.Storage
}

// NewService makes a Service and, when storage is given, loads the
// persisted definitions into the registry.
func NewService(ctx context.Context, storage *store.Storage) (*Service, error) {
	s := &Service{
		registry: registry.NewRegistry(),
		storage:  storage,
	}

	if storage != nil {
		names, err := storage.Definitions(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			src, err := storage.GetDefinition(ctx, name)
			if err != nil {
				return nil, err
			}
			cfg, warnings, err := def.Parse([]byte(src))
			if err != nil {
				util.Logf("Service.NewService skipping %s: %s", name, err)
				continue
			}
			for _, w := range warnings {
				util.Logf("Service.NewService %s: %s", name, w.String())
			}
			s.registry.Add(name, cfg)
		}
	}

	return s, nil
}

// Do processes one operation.  The returned SResult always has the
// op's Id and Op; an operation that failed carries Err.
func (s *Service) Do(ctx context.Context, op *SOp) *SResult {
	res := &SResult{
		Id: op.Id,
		Op: op.Op,
	}

	s.logf("Do %s %s", op.Op, op.Name)

	switch op.Op {
	case "load":
		if op.Name == "" {
			return erred(res, fmt.Errorf("load needs a name"))
		}
		var (
			cfg      *core.Config
			warnings []def.Warning
			err      error
		)
		if op.YAML {
			cfg, err = def.FromYAML([]byte(op.Def))
		} else {
			cfg, warnings, err = def.Parse([]byte(op.Def))
		}
		if err != nil {
			return erred(res, err)
		}
		for _, w := range warnings {
			res.Warnings = append(res.Warnings, w.String())
		}
		s.registry.Add(op.Name, cfg)
		if s.storage != nil {
			// Persist the canonical text form either way.
			if err := s.storage.PutDefinition(ctx, op.Name, cfg.Definition()); err != nil {
				return erred(res, err)
			}
		}

	case "rem":
		if !s.registry.Rem(op.Name) {
			return erred(res, registry.NotFound)
		}
		if s.storage != nil {
			if err := s.storage.RemDefinition(ctx, op.Name); err != nil {
				return erred(res, err)
			}
		}

	case "list":
		res.Names = s.registry.Names()

	case "sim":
		input := make([]core.Symbol, 0, len(op.Input)+1)
		for _, token := range op.Input {
			input = append(input, core.FromToken(token))
		}
		if op.AppendEnd {
			input = append(input, core.InputEnd)
		}

		r, err := s.registry.Run(op.Name, input)
		if err != nil {
			return erred(res, err)
		}
		res.Accepted = &r.Accepted
		res.Reason = r.Reason.String()
		res.Consumed = r.Consumed

		if s.storage != nil {
			rec := &store.RunRecord{
				Input:    symbolStrings(input),
				Accepted: r.Accepted,
				Reason:   r.Reason.String(),
				At:       time.Now().UTC(),
			}
			if err := s.storage.AppendRun(ctx, op.Name, rec); err != nil {
				return erred(res, err)
			}
		}

	case "runs":
		if s.storage == nil {
			return erred(res, fmt.Errorf("no storage"))
		}
		runs, err := s.storage.Runs(ctx, op.Name)
		if err != nil {
			return erred(res, err)
		}
		res.Runs = runs

	default:
		return erred(res, fmt.Errorf("unknown op %q", op.Op))
	}

	return res
}

func (s *Service) logf(format string, args ...interface{}) {
	if s.Debug {
		util.Logf("Service."+format, args...)
	}
}

func symbolStrings(input []core.Symbol) []string {
	acc := make([]string, len(input))
	for i, sym := range input {
		acc[i] = sym.String()
	}
	return acc
}
