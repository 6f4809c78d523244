package solver

import (
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/model"
	"github.com/katalvlaran/imdp/product"
)

// checkHorizon rejects non-positive horizons.
func checkHorizon(h int) error {
	if h <= 0 {
		return fmt.Errorf("solver: horizon %d must be positive: %w", h, imdp.ErrInvalidSpecification)
	}

	return nil
}

// checkTolerance rejects non-positive convergence thresholds.
func checkTolerance[R imdp.Real](tol R) error {
	if tol <= 0 {
		return fmt.Errorf("solver: tolerance %v must be positive: %w", tol, imdp.ErrInvalidSpecification)
	}

	return nil
}

// checkStates rejects indices outside [0, n). Empty sets are legal: an empty
// reach set simply yields the all-zero value function.
func checkStates(states []int, n int) error {
	for _, s := range states {
		if s < 0 || s >= n {
			return fmt.Errorf("solver: state %d out of [0,%d): %w", s, n, imdp.ErrInvalidState)
		}
	}

	return nil
}

// checkRewards rejects reward vectors not covering every state.
func checkRewards[R imdp.Real](rewards []R, n int) error {
	if len(rewards) != n {
		return fmt.Errorf("solver: reward vector covers %d states, want %d: %w",
			len(rewards), n, imdp.ErrInvalidState)
	}

	return nil
}

// checkDisjoint rejects overlapping reach and avoid sets.
func checkDisjoint(targets, avoid []int) error {
	seen := make(map[int]bool, len(targets))
	for _, t := range targets {
		seen[t] = true
	}
	for _, a := range avoid {
		if seen[a] {
			return fmt.Errorf("solver: state %d both reach and avoid: %w", a, imdp.ErrInvalidSpecification)
		}
	}

	return nil
}

// rejectProduct refuses flat-state properties on product processes.
func rejectProduct[R imdp.Real](sys model.System[R]) error {
	if sys.Kind() == model.KindProduct {
		return fmt.Errorf("solver: flat-state property on a product process: %w", imdp.ErrIncompatibleModelAndProperty)
	}

	return nil
}

// requireProduct refuses DFA-valued properties on non-product processes.
func requireProduct[R imdp.Real](sys model.System[R]) (*product.Process[R], error) {
	proc, ok := sys.(*product.Process[R])
	if !ok {
		return nil, fmt.Errorf("solver: automaton property on a %s process: %w", sys.Kind(), imdp.ErrIncompatibleModelAndProperty)
	}

	return proc, nil
}

// liftAccepting expands DFA accepting states to linear product targets:
// (s, q) is a target iff q is accepting.
func liftAccepting[R imdp.Real](proc *product.Process[R], accepting []int) []int {
	targets := make([]int, 0, proc.Underlying().NumStates()*len(accepting))
	for s := 0; s < proc.Underlying().NumStates(); s++ {
		for _, q := range accepting {
			targets = append(targets, proc.StateIndex(s, q))
		}
	}

	return targets
}

// zeros initializes v to the all-zero vector (reward accumulators).
func zeros[R imdp.Real]() func(v []R) {
	return func(v []R) {
		for i := range v {
			v[i] = 0
		}
	}
}

// indicator initializes v to the characteristic vector of states.
func indicator[R imdp.Real](states []int) func(v []R) {
	return func(v []R) {
		for i := range v {
			v[i] = 0
		}
		for _, s := range states {
			v[s] = 1
		}
	}
}

// complementIndicator initializes v to 1 everywhere except states.
func complementIndicator[R imdp.Real](states []int) func(v []R) {
	return func(v []R) {
		for i := range v {
			v[i] = 1
		}
		for _, s := range states {
			v[s] = 0
		}
	}
}

// pin forces v[s] = value on every listed state.
func pin[R imdp.Real](states []int, value R) func(v []R) {
	return func(v []R) {
		for _, s := range states {
			v[s] = value
		}
	}
}

// pinTwo forces two disjoint sets to their respective values.
func pinTwo[R imdp.Real](first []int, firstValue R, second []int, secondValue R) func(v []R) {
	return func(v []R) {
		for _, s := range first {
			v[s] = firstValue
		}
		for _, s := range second {
			v[s] = secondValue
		}
	}
}
