package bellman

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
	"github.com/katalvlaran/imdp/model"
)

// FactoredBackup applies one robust Bellman step to a factored process
// without materializing the joint kernel. For every (source, action) the
// value tensor is reduced one axis at a time, last axis first, each fiber
// O-maximized against the owning marginal's column for that source; actions
// are then reduced in the cfg.Actions sense and the scalar written to dst at
// the source's row-major index. strategy, when non-nil, receives the linear
// index of the selected action per source.
//
// Exact when marginal dependencies partition the state variables
// (model.KindFactoredIMDP); the fixed descending-axis reduction is otherwise
// a sound McCormick bound. Implicit-sink sources pass their current
// coordinate value through untouched.
//
// dst must not alias v. ws must have been sized for f via NewWorkspace.
func FactoredBackup[R imdp.Real](dst, v []R, f *model.Factored[R], ws *Workspace[R], cfg Config, strategy []int) error {
	// 1) Prepare: joint source count drives the partitioning.
	n := f.NumStates()

	// 2) ParallelSources: one goroutine and one scratch set per block.
	if ws.policy == ParallelSources && ws.workers > 1 && n > 1 {
		var g errgroup.Group
		for w, blk := range splitRange(n, ws.workers) {
			scr := ws.scratch[w]
			blk := blk
			g.Go(func() error {
				return factoredRange(dst, v, f, nil, scr, cfg, strategy, blk.lo, blk.hi)
			})
		}

		return g.Wait()
	}

	// 3) Otherwise run sources inline; the workspace is handed down so the
	//    reductions may still spend fiber-level parallelism.
	return factoredRange(dst, v, f, ws, ws.scratch[0], cfg, strategy, 0, n)
}

// factoredRange reduces sources [lo, hi) with one scratch set. ws is non-nil
// only when fiber-level parallelism may be spent inside the reductions.
func factoredRange[R imdp.Real](dst, v []R, f *model.Factored[R], ws *Workspace[R], scr *scratch[R],
	cfg Config, strategy []int, lo, hi int) error {
	numA := f.NumActions()

	for s := lo; s < hi; s++ {
		// 1) Decode the linear source index into its coordinate tuple.
		f.StateTuple(s, scr.state)

		// 2) Reduce every joint action and keep the best in the
		//    cfg.Actions sense.
		var best R
		bestAction := 0
		for a := 0; a < numA; a++ {
			// 2.1) Decode the action tuple the marginals will read.
			f.ActionTuple(a, scr.action)
			// 2.2) Collapse the value tensor to this action's scalar.
			val, err := reduceAxes(v, f, ws, scr, cfg)
			if err != nil {
				return err
			}
			// 2.3) Action reduction; the first action seeds the incumbent.
			if a == 0 || better(val, best, cfg.Actions) {
				best, bestAction = val, a
			}
		}

		// 3) Commit value and, when requested, the winning linear action.
		dst[s] = best
		if strategy != nil {
			strategy[s] = bestAction
		}
	}

	return nil
}

// reduceAxes collapses the value tensor to a scalar for the decoded
// (state, action) held in scr, reducing axes N−1 .. 0 in that fixed order.
// The current tensor ping-pongs between the two scratch buffers; v itself is
// only read.
func reduceAxes[R imdp.Real](v []R, f *model.Factored[R], ws *Workspace[R], scr *scratch[R], cfg Config) (R, error) {
	// 1) Start from the full tensor; v itself is never written.
	dims := f.StateValues()
	cur := v
	size := len(v)
	useA := true

	// 2) Collapse axes N−1 .. 0, the fixed McCormick order.
	for i := len(dims) - 1; i >= 0; i-- {
		// 2.1) The trailing axis of a row-major tensor has contiguous
		//      fibers of length d; prefix counts them.
		d := dims[i]
		prefix := size / d

		// 2.2) Ping-pong the output between the two scratch buffers.
		out := scr.bufB
		if useA {
			out = scr.bufA
		}
		useA = !useA

		// 2.3) Reduce every fiber with marginal i's column for this source.
		mg := f.Marginal(i)
		switch {
		case mg.Sink(scr.state):
			// 2.3.1) Implicit sink: the coordinate holds, select instead
			//        of optimizing.
			t := scr.state[i]
			for p := 0; p < prefix; p++ {
				out[p] = cur[p*d+t]
			}
		case ws != nil && ws.policy == ParallelFibers && ws.workers > 1 && prefix >= parallelFiberCutoff:
			// 2.3.2) Wide axis under ParallelFibers: split the fiber loop.
			set := mg.Sets().Set(mg.ColumnOf(scr.state, scr.action))
			if err := reduceFibersParallel(out, cur, set, d, prefix, ws, cfg); err != nil {
				return 0, err
			}
		default:
			// 2.3.3) Inline per-fiber O-max with the caller's scratch.
			set := mg.Sets().Set(mg.ColumnOf(scr.state, scr.action))
			if err := reduceFibers(out, cur, set, d, 0, prefix, scr.perm[:d], cfg); err != nil {
				return 0, err
			}
		}

		// 2.4) The reduced tensor becomes the next round's input.
		cur = out[:prefix]
		size = prefix
	}

	// 3) After the last axis one scalar remains.
	return cur[0], nil
}

// reduceFibers O-maximizes fibers [lo, hi) of the current tensor against one
// shared ambiguity column, using the caller's permutation scratch.
func reduceFibers[R imdp.Real](out, cur []R, set interval.Set[R], d, lo, hi int, perm []int, cfg Config) error {
	for p := lo; p < hi; p++ {
		// 1) Slice the contiguous fiber out of the current tensor.
		fiber := cur[p*d : p*d+d]
		// 2) Order it locally; the global ordering knows nothing of fibers.
		argsortFiber(perm, fiber, cfg.Adversary)
		// 3) Exact 1-D O-max against the shared column.
		val, err := OMax(set, fiber, perm)
		if err != nil {
			return err
		}
		out[p] = val
	}

	return nil
}

// reduceFibersParallel splits the fiber loop across the workspace workers,
// each with its own permutation scratch; out writes are disjoint per fiber.
func reduceFibersParallel[R imdp.Real](out, cur []R, set interval.Set[R], d, prefix int, ws *Workspace[R], cfg Config) error {
	var g errgroup.Group
	for w, blk := range splitRange(prefix, ws.workers) {
		perm := ws.scratch[w].perm[:d]
		blk := blk
		g.Go(func() error {
			return reduceFibers(out, cur, set, d, blk.lo, blk.hi, perm, cfg)
		})
	}

	return g.Wait()
}
