package solver

import (
	"context"
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/bellman"
	"github.com/katalvlaran/imdp/model"
	"github.com/katalvlaran/imdp/ordering"
	"github.com/katalvlaran/imdp/product"
)

// engine applies one Bellman backup of a single kernel stage: read vprev,
// write dst, optionally record action choices.
type engine[R imdp.Real] func(dst, vprev []R, strategy []int) error

// iterate is the value-iteration driver shared by verification and
// synthesis. stages holds one system per calendar step (a single entry for
// stationary kernels); iteration k, counted from the horizon backward,
// consumes the stage for calendar step H−k.
func iterate[R imdp.Real](ctx context.Context, stages []model.System[R], spec Specification[R],
	opts Options, wantStrategy bool) (*Result[R], *Strategy, error) {
	// 1) Compile the property and fix the two backup directions.
	pl := spec.Property.plan(stages[0])
	cfg := bellman.Config{
		Adversary: adversaryDirection(spec.Satisfaction),
		Actions:   actionDirection(spec.Strategy),
		Workers:   opts.Workers,
	}

	// 2) Compile one backup engine per kernel stage (orderings, workspaces
	//    and projection buffers are allocated here, never in the loop).
	engines := make([]engine[R], len(stages))
	for t, sys := range stages {
		eng, err := newEngine[R](sys, cfg, opts.Policy)
		if err != nil {
			return nil, nil, err
		}
		engines[t] = eng
	}

	// 3) Allocate the double buffer and write the property's V⁰.
	n := stages[0].NumStates()
	v := make([]R, n)
	vprev := make([]R, n)
	pl.init(v)

	// 4) Strategy capture rows: per calendar step for finite horizons, one
	//    overwritten row otherwise.
	var rows [][]int
	if wantStrategy {
		rows = strategyRows(n, pl.horizon)
	}

	// 5) The fixed-point loop; always at least one backup.
	iter := 0
	var residual R
	for {
		// 5.1) Observe cancellation between iterations only — the last
		//      completed iterate is always intact.
		select {
		case <-ctx.Done():
			res := &Result[R]{Values: v, Iterations: iter, Residual: residual}

			return res, nil, fmt.Errorf("solver: %w after %d iterations", imdp.ErrCancelled, iter)
		default:
		}

		// 5.2) Roll the double buffer.
		copy(vprev, v)

		// 5.3) Select this iteration's kernel stage (horizon backward) and
		//      strategy row (calendar order).
		stage := 0
		if len(stages) > 1 {
			stage = len(stages) - 1 - iter
		}
		var row []int
		if rows != nil {
			if pl.horizon > 0 {
				row = rows[pl.horizon-1-iter]
			} else {
				row = rows[0]
			}
		}

		// 5.4) One robust Bellman backup: vprev in, v out.
		if err := engines[stage](v, vprev, row); err != nil {
			return nil, nil, err
		}

		// 5.5) Property post-processing: reward accumulation, terminal
		//      forcing, probability clamping — in that order.
		if pl.reward != nil {
			for i := range v {
				v[i] = pl.reward[i] + pl.discount*v[i]
			}
		}
		if pl.force != nil {
			pl.force(v)
		}
		if pl.clamp {
			clampUnit(v)
		}

		// 5.6) Residual and bookkeeping.
		residual = maxResidual(v, vprev)
		iter++

		opts.Logger.Debug().
			Int("iteration", iter).
			Float64("residual", float64(residual)).
			Msg("bellman backup complete")

		// 5.7) Terminate on the horizon or on convergence.
		if pl.horizon > 0 {
			if iter == pl.horizon {
				break
			}
		} else if residual < pl.tol {
			break
		}
	}

	// 6) Package the result; wrap captured rows in the strategy flavor the
	//    property's horizon dictates.
	res := &Result[R]{Values: v, Iterations: iter, Residual: residual}
	if !wantStrategy {
		return res, nil, nil
	}
	if pl.horizon > 0 {
		return res, NewTimeVaryingStrategy(rows), nil
	}

	return res, NewStationaryStrategy(rows[0]), nil
}

// strategyRows allocates the capture buffers: one row per calendar step for
// finite horizons, a single overwritten row otherwise.
func strategyRows(n, horizon int) [][]int {
	steps := 1
	if horizon > 0 {
		steps = horizon
	}
	rows := make([][]int, steps)
	for t := range rows {
		rows[t] = make([]int, n)
	}

	return rows
}

// newEngine compiles one kernel stage into its backup closure, dispatching
// on the closed set of system kinds.
func newEngine[R imdp.Real](sys model.System[R], cfg bellman.Config, policy bellman.Policy) (engine[R], error) {
	switch m := sys.(type) {
	case *model.IMDP[R]:
		ord := ordering.For(m.Transitions())

		return func(dst, vprev []R, strategy []int) error {
			ord.SortStates(vprev, cfg.SortDirection())
			ord.PopulateSubsets()

			return bellman.Backup(dst, vprev, m, ord, cfg, strategy)
		}, nil

	case *model.Factored[R]:
		ws := bellman.NewWorkspace(m, policy, cfg.Workers)

		return func(dst, vprev []R, strategy []int) error {
			return bellman.FactoredBackup(dst, vprev, m, ws, cfg, strategy)
		}, nil

	case *product.Process[R]:
		return newProductEngine(m, cfg), nil

	default:
		return nil, fmt.Errorf("solver: no Bellman kernel for %T: %w", sys, imdp.ErrIncompatibleModelAndProperty)
	}
}

// newProductEngine lifts the flat backup through the automaton: for each
// automaton state q the value tensor is projected through δ(q, L(·)), the
// underlying model backed up against the projection, and the slice written
// back at the product indices (·, q). Deterministic automata add no
// ambiguity, so no further optimization is needed.
func newProductEngine[R imdp.Real](proc *product.Process[R], cfg bellman.Config) engine[R] {
	inner := proc.Underlying()
	dfa := proc.Automaton()
	nS, nQ := inner.NumStates(), dfa.NumStates()
	ord := ordering.For(inner.Transitions())

	projected := make([]R, nS)
	slice := make([]R, nS)
	actions := make([]int, nS)

	return func(dst, vprev []R, strategy []int) error {
		for q := 0; q < nQ; q++ {
			// 1) Project: the successor's automaton move is deterministic,
			//    so fold it into the value vector up front.
			for t := 0; t < nS; t++ {
				projected[t] = vprev[t*nQ+dfa.Step(q, proc.Label(t))]
			}

			// 2) Re-sort the shared ordering: each q projects differently.
			ord.SortStates(projected, cfg.SortDirection())
			ord.PopulateSubsets()

			// 3) Flat backup of the underlying model against the projection.
			var row []int
			if strategy != nil {
				row = actions
			}
			if err := bellman.Backup(slice, projected, inner, ord, cfg, row); err != nil {
				return err
			}

			// 4) Scatter the slice back to the product indices (·, q).
			for s := 0; s < nS; s++ {
				dst[s*nQ+q] = slice[s]
				if strategy != nil {
					strategy[s*nQ+q] = actions[s]
				}
			}
		}

		return nil
	}
}

// maxResidual returns ‖a − b‖∞, clamped at zero against round-off.
func maxResidual[R imdp.Real](a, b []R) R {
	var worst R
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > worst {
			worst = d
		}
	}

	return worst
}

// clampUnit clips probability values into [0, 1].
func clampUnit[R imdp.Real](v []R) {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0
		} else if v[i] > 1 {
			v[i] = 1
		}
	}
}
