package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/jsccast/yaml"

	"github.com/HermanPlay/pushdown-automata-simulator/core"
)

// Check is a scheduled expectation: on the cron schedule, run the
// input against the named automaton and complain when the verdict
// disagrees.
type Check struct {
	// Name is the registry name of the automaton.
	Name string `json:"name" yaml:"name"`

	// Schedule is a cron expression.
	Schedule string `json:"schedule" yaml:"schedule"`

	// Input is the input as explicit tokens.
	Input []string `json:"input" yaml:"input"`

	// AppendEnd appends the input-end marker.
	AppendEnd bool `json:"appendEnd,omitempty" yaml:",omitempty"`

	// Accepted is the expected verdict.
	Accepted bool `json:"accepted" yaml:"accepted"`
}

// LoadChecks reads a YAML list of Checks.
func LoadChecks(filename string) ([]Check, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var checks []Check
	if err := yaml.Unmarshal(bs, &checks); err != nil {
		return nil, err
	}
	// Validate the schedules now instead of at first fire.
	for _, c := range checks {
		if _, err := cronexpr.Parse(c.Schedule); err != nil {
			return nil, err
		}
	}
	return checks, nil
}

// RunChecks runs each check on its schedule until the context is
// canceled.
func (s *Service) RunChecks(ctx context.Context, checks []Check) {
	for _, c := range checks {
		go s.runCheck(ctx, c)
	}
}

func (s *Service) runCheck(ctx context.Context, c Check) {
	expr, err := cronexpr.Parse(c.Schedule)
	if err != nil {
		log.Printf("check %s bad schedule: %s", c.Name, err)
		return
	}

	input := make([]core.Symbol, 0, len(c.Input)+1)
	for _, token := range c.Input {
		input = append(input, core.FromToken(token))
	}
	if c.AppendEnd {
		input = append(input, core.InputEnd)
	}

	for {
		next := expr.Next(time.Now())
		if next.IsZero() {
			log.Printf("check %s schedule has no next firing", c.Name)
			return
		}

		t := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}

		res, err := s.registry.Run(c.Name, input)
		if err != nil {
			log.Printf("check %s error: %s", c.Name, err)
			continue
		}
		if res.Accepted != c.Accepted {
			log.Printf("check %s failed: input %s got %v (%s at symbol %d), want %v",
				c.Name, core.SymbolsString(input),
				res.Accepted, res.Reason, res.Consumed, c.Accepted)
		} else {
			s.logf("runCheck %s happy", c.Name)
		}
	}
}
