package solver

import (
	"context"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/model"
)

// Verify is the one-call verification entry point: construct the problem,
// validate everything, and iterate.
func Verify[R imdp.Real](ctx context.Context, sys model.System[R], spec Specification[R], opts Options) (*Result[R], error) {
	prob, err := NewVerificationProblem(sys, spec, opts)
	if err != nil {
		return nil, err
	}

	return prob.Solve(ctx)
}

// Synthesize is the one-call synthesis entry point: value plus strategy.
func Synthesize[R imdp.Real](ctx context.Context, sys model.System[R], spec Specification[R], opts Options) (*Strategy, *Result[R], error) {
	prob, err := NewControlSynthesisProblem(sys, spec, opts)
	if err != nil {
		return nil, nil, err
	}

	return prob.Solve(ctx)
}
