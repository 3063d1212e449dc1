package main

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type teardownStep struct {
	name string
	fn   func(context.Context) error
}

// teardown releases resources in reverse acquisition order. Every step runs
// even when an earlier one fails.
type teardown struct {
	steps []teardownStep
}

func (t *teardown) add(name string, fn func(context.Context) error) {
	t.steps = append(t.steps, teardownStep{name: name, fn: fn})
}

func (t *teardown) run(ctx context.Context) error {
	var result *multierror.Error

	for i := len(t.steps) - 1; i >= 0; i-- {
		step := t.steps[i]
		if err := step.fn(ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing %s: %w", step.name, err))
		}
	}

	return result.ErrorOrNil()
}
