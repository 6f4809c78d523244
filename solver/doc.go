// Package solver is the top-level entry point: it bundles a process, a
// temporal property and the two optimization modes into a validated problem,
// then runs robust value iteration to a horizon or a fixed point.
//
// 🚀 Problems
//
//	– VerificationProblem    — value only
//	– ControlSynthesisProblem — value plus the realizing strategy
//
// Both are built from a Specification: a Property (reachability, reach-avoid,
// safety, discounted reward, expected exit time, or DFA reachability on a
// product process; each in finite- and infinite-horizon form) together with
// a SatisfactionMode resolving the interval ambiguity and a StrategyMode
// reducing over actions. Pessimistic–Maximize, the default, lower-bounds the
// best controller against the worst adversary.
//
// Every invariant is checked at construction — horizons and tolerances
// positive, state indices in range, reach and avoid sets disjoint, kernel
// stages shape-compatible, automaton properties matched to product models —
// so the iteration itself never re-validates.
//
// 🚀 The driver
//
// Finite-horizon problems execute exactly H backups; infinite-horizon ones
// iterate until the max-norm residual drops below the tolerance, with at
// least one backup either way. Time-varying kernels supply one stage per
// calendar step, consumed from the horizon backward. A flat backup sorts the
// value ordering once on the calling goroutine (a product backup once per
// automaton state; a factored backup orders each fiber locally), then fans
// sources out across Options.Workers goroutines writing disjoint slices — iterates are
// bit-identical for any worker count. Cancellation is observed between
// iterations: the value array of the last completed backup is returned with
// imdp.ErrCancelled, never a torn buffer.
//
// Per-iteration progress (iteration count, residual) is emitted at debug
// level on Options.Logger; the default zerolog.Nop() stays silent.
//
// Errors: construction wraps the root sentinels (imdp.ErrInvalidSpecification,
// imdp.ErrInvalidState, imdp.ErrIncompatibleModelAndProperty,
// imdp.ErrDimensionMismatch); Solve adds imdp.ErrCancelled.
//
// Example:
//
//	prob, err := solver.NewVerificationProblem(chain, solver.Specification[float64]{
//	    Property: solver.FiniteTimeReachability[float64]{Targets: []int{2}, Horizon: 10},
//	}, solver.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := prob.Solve(context.Background())
package solver
