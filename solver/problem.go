package solver

import (
	"context"
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/model"
)

// Specification bundles a temporal property with the two directions of the
// Bellman backup: how the interval ambiguity resolves (Satisfaction) and how
// actions reduce (Strategy). The zero modes are Pessimistic and Maximize.
type Specification[R imdp.Real] struct {
	Property     Property[R]
	Satisfaction SatisfactionMode
	Strategy     StrategyMode
}

// validate checks the specification against a model.
func (s Specification[R]) validate(sys model.System[R]) error {
	if s.Property == nil {
		return fmt.Errorf("solver: specification carries no property: %w", imdp.ErrInvalidSpecification)
	}

	return s.Property.validate(sys)
}

// VerificationProblem asks for the value of a specification on a process —
// no strategy is extracted. Construction performs all validation; Solve
// assumes a well-formed problem.
type VerificationProblem[R imdp.Real] struct {
	stages []model.System[R]
	spec   Specification[R]
	opts   Options
}

// NewVerificationProblem validates and bundles a stationary problem.
func NewVerificationProblem[R imdp.Real](sys model.System[R], spec Specification[R], opts Options) (*VerificationProblem[R], error) {
	stages, err := checkProblem([]model.System[R]{sys}, spec, opts)
	if err != nil {
		return nil, err
	}

	return &VerificationProblem[R]{stages: stages, spec: spec, opts: opts}, nil
}

// NewTimeVaryingVerificationProblem validates a problem whose kernel changes
// per step: stages[t] drives calendar step t, and the property must be
// finite-horizon with horizon len(stages).
func NewTimeVaryingVerificationProblem[R imdp.Real](stages []model.System[R], spec Specification[R], opts Options) (*VerificationProblem[R], error) {
	checked, err := checkProblem(stages, spec, opts)
	if err != nil {
		return nil, err
	}

	return &VerificationProblem[R]{stages: checked, spec: spec, opts: opts}, nil
}

// NewVerificationProblemUnderStrategy validates a verification problem in
// which the action choice is fixed by strat: the model is projected through
// the strategy into a chain (per step for time-varying strategies) and the
// specification evaluated on the projection.
func NewVerificationProblemUnderStrategy[R imdp.Real](sys *model.IMDP[R], spec Specification[R], strat *Strategy, opts Options) (*VerificationProblem[R], error) {
	// 1) Validate the specification and options against the unrestricted
	//    model first; the projection must not mask their errors.
	if sys == nil {
		return nil, fmt.Errorf("solver: nil model: %w", imdp.ErrDimensionMismatch)
	}
	if err := spec.validate(sys); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// 2) Validate the strategy's shape: time-varying rows must match the
	//    property's horizon, every row must cover every state.
	horizon := spec.Property.plan(sys).horizon
	if err := strat.checkAgainst(sys.NumStates(), horizon); err != nil {
		return nil, err
	}

	// 3) Project: one chain for a stationary strategy, one per calendar
	//    step otherwise. Restrict re-checks the action indices.
	var stages []model.System[R]
	if strat.IsStationary() {
		chain, err := sys.Restrict(strat.Row(0))
		if err != nil {
			return nil, err
		}
		stages = []model.System[R]{chain}
	} else {
		stages = make([]model.System[R], strat.Steps())
		for t := 0; t < strat.Steps(); t++ {
			chain, err := sys.Restrict(strat.Row(t))
			if err != nil {
				return nil, err
			}
			stages[t] = chain
		}
	}

	return &VerificationProblem[R]{stages: stages, spec: spec, opts: opts}, nil
}

// Solve runs value iteration to the property's termination condition. On
// context cancellation the value array of the last completed iteration is
// returned together with imdp.ErrCancelled.
func (p *VerificationProblem[R]) Solve(ctx context.Context) (*Result[R], error) {
	res, _, err := iterate(ctx, p.stages, p.spec, p.opts, false)

	return res, err
}

// ControlSynthesisProblem asks for the optimal (or adversarial, under
// Minimize) strategy alongside the value: stationary for infinite-horizon
// properties, per-step for finite-horizon ones.
type ControlSynthesisProblem[R imdp.Real] struct {
	stages []model.System[R]
	spec   Specification[R]
	opts   Options
}

// NewControlSynthesisProblem validates and bundles a stationary synthesis
// problem.
func NewControlSynthesisProblem[R imdp.Real](sys model.System[R], spec Specification[R], opts Options) (*ControlSynthesisProblem[R], error) {
	stages, err := checkProblem([]model.System[R]{sys}, spec, opts)
	if err != nil {
		return nil, err
	}

	return &ControlSynthesisProblem[R]{stages: stages, spec: spec, opts: opts}, nil
}

// NewTimeVaryingControlSynthesisProblem is the time-varying counterpart; see
// NewTimeVaryingVerificationProblem.
func NewTimeVaryingControlSynthesisProblem[R imdp.Real](stages []model.System[R], spec Specification[R], opts Options) (*ControlSynthesisProblem[R], error) {
	checked, err := checkProblem(stages, spec, opts)
	if err != nil {
		return nil, err
	}

	return &ControlSynthesisProblem[R]{stages: checked, spec: spec, opts: opts}, nil
}

// Solve runs value iteration capturing the selected action per state (and
// per step for finite horizons).
func (p *ControlSynthesisProblem[R]) Solve(ctx context.Context) (*Strategy, *Result[R], error) {
	res, strat, err := iterate(ctx, p.stages, p.spec, p.opts, true)

	return strat, res, err
}

// checkProblem validates the pieces shared by all constructors and returns a
// defensive copy of the stage list.
func checkProblem[R imdp.Real](stages []model.System[R], spec Specification[R], opts Options) ([]model.System[R], error) {
	// 1) Stage list: non-empty, no nils, shape-uniform across steps.
	if len(stages) == 0 {
		return nil, fmt.Errorf("solver: no model: %w", imdp.ErrDimensionMismatch)
	}
	for t, sys := range stages {
		if sys == nil {
			return nil, fmt.Errorf("solver: nil stage %d: %w", t, imdp.ErrDimensionMismatch)
		}
		if sys.NumStates() != stages[0].NumStates() || sys.Kind() != stages[0].Kind() {
			return nil, fmt.Errorf("solver: stage %d shape differs from stage 0: %w", t, imdp.ErrDimensionMismatch)
		}
	}

	// 2) Specification and options against the first stage (all agree).
	if err := spec.validate(stages[0]); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// 3) Time-varying discipline: finite horizon only, one stage per step.
	if len(stages) > 1 {
		horizon := spec.Property.plan(stages[0]).horizon
		if horizon == 0 {
			return nil, fmt.Errorf("solver: infinite-horizon property on a time-varying kernel: %w", imdp.ErrInvalidSpecification)
		}
		if horizon != len(stages) {
			return nil, fmt.Errorf("solver: horizon %d but %d kernel stages: %w",
				horizon, len(stages), imdp.ErrInvalidSpecification)
		}
	}

	// 4) Defensive copy so later caller mutations cannot skew the solve.
	out := make([]model.System[R], len(stages))
	copy(out, stages)

	return out, nil
}
