package solver

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/bellman"
)

// SatisfactionMode resolves the interval ambiguity inside every backup:
// Pessimistic plays the worst-case adversary, Optimistic the best case.
type SatisfactionMode int

const (
	// Pessimistic minimizes over the ambiguity sets (lower bound on
	// satisfaction). The default for verification.
	Pessimistic SatisfactionMode = iota
	// Optimistic maximizes over the ambiguity sets (upper bound).
	Optimistic
)

// String returns the mode's conventional name.
func (m SatisfactionMode) String() string {
	if m == Optimistic {
		return "Optimistic"
	}

	return "Pessimistic"
}

// StrategyMode reduces over each state's action block: Maximize synthesizes
// or assumes a controller pursuing the property, Minimize an antagonist.
type StrategyMode int

const (
	// Maximize picks the best action per state. The default.
	Maximize StrategyMode = iota
	// Minimize picks the worst action per state.
	Minimize
)

// String returns the mode's conventional name.
func (m StrategyMode) String() string {
	if m == Minimize {
		return "Minimize"
	}

	return "Maximize"
}

// Options configures a solve. The zero value is not ready to use; start from
// DefaultOptions.
//
//	Workers — parallel width of each backup's data-parallel region.
//	Policy  — scratch layout for factored backups (bellman.Policy).
//	Logger  — per-iteration debug events; zerolog.Nop() stays silent.
type Options struct {
	Workers int
	Policy  bellman.Policy
	Logger  zerolog.Logger
}

// DefaultOptions returns the ready-to-use defaults:
//
//	Workers: runtime.GOMAXPROCS(0)
//	Policy:  bellman.ParallelSources
//	Logger:  zerolog.Nop()
func DefaultOptions() Options {
	return Options{
		Workers: runtime.GOMAXPROCS(0),
		Policy:  bellman.ParallelSources,
		Logger:  zerolog.Nop(),
	}
}

// Validate checks the option combination.
func (o *Options) Validate() error {
	if o.Workers < 1 {
		return fmt.Errorf("solver: workers must be positive: %w", imdp.ErrInvalidSpecification)
	}
	if o.Policy < bellman.SingleThreaded || o.Policy > bellman.ParallelSources {
		return fmt.Errorf("solver: unknown workspace policy %d: %w", o.Policy, imdp.ErrInvalidSpecification)
	}

	return nil
}

// Result carries the output of a solve: the final value array (row-major
// over the model's state layout), the number of Bellman backups executed,
// and the last max-norm residual (always ≥ 0; zero for horizon-terminated
// runs only by coincidence).
type Result[R imdp.Real] struct {
	Values     []R
	Iterations int
	Residual   R
}

// adversaryDirection maps a satisfaction mode onto the O-max sense.
func adversaryDirection(m SatisfactionMode) bellman.Direction {
	if m == Optimistic {
		return bellman.Maximize
	}

	return bellman.Minimize
}

// actionDirection maps a strategy mode onto the action reduction sense.
func actionDirection(m StrategyMode) bellman.Direction {
	if m == Minimize {
		return bellman.Minimize
	}

	return bellman.Maximize
}
