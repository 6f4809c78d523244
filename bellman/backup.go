package bellman

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
	"github.com/katalvlaran/imdp/model"
	"github.com/katalvlaran/imdp/ordering"
)

// Backup applies one batched robust Bellman step to a flat process: for every
// source state it O-maximizes each action column against v, reduces over the
// action block in the cfg.Actions sense, and writes the result into dst. When
// strategy is non-nil, the index of the selected action (relative to the
// state's block) is recorded per source.
//
// ord must have been sorted on v with cfg.SortDirection() and populated
// before the call; it is only read here. dst must not alias v.
//
// Sources are processed data-parallel across cfg.Workers goroutines; each
// worker writes disjoint slices of dst and strategy, so the result is
// bit-identical regardless of width.
func Backup[R imdp.Real](dst, v []R, mdp *model.IMDP[R], ord ordering.Ordering[R], cfg Config, strategy []int) error {
	// 1) Prepare: source count and the shared read-only collection.
	n := mdp.NumStates()
	trans := mdp.Transitions()

	// 2) Serial fast path: nothing to fan out for one worker or one source.
	if cfg.Workers <= 1 || n < 2 {
		return backupRange(dst, v, trans, mdp, ord, cfg, strategy, 0, n)
	}

	// 3) Parallel region: one goroutine per source block, disjoint writes.
	var g errgroup.Group
	for _, blk := range splitRange(n, cfg.Workers) {
		blk := blk
		g.Go(func() error {
			return backupRange(dst, v, trans, mdp, ord, cfg, strategy, blk.lo, blk.hi)
		})
	}

	// 4) Join: the backup is complete only when every block has written.
	return g.Wait()
}

// backupRange processes sources [lo, hi).
func backupRange[R imdp.Real](dst, v []R, trans interval.Collection[R], mdp *model.IMDP[R],
	ord ordering.Ordering[R], cfg Config, strategy []int, lo, hi int) error {
	for s := lo; s < hi; s++ {
		// 1) Locate the source's action block in the column layout.
		first, last := mdp.Actions(s)

		// 2) Seed the reduction with the first action's O-max value.
		best, err := OMax(trans.Set(first), v, ord.Perm(first))
		if err != nil {
			return err
		}
		bestAction := 0

		// 3) Reduce the remaining actions in the cfg.Actions sense,
		//    remembering which column won.
		for j := first + 1; j < last; j++ {
			val, err := OMax(trans.Set(j), v, ord.Perm(j))
			if err != nil {
				return err
			}
			if better(val, best, cfg.Actions) {
				best, bestAction = val, j-first
			}
		}

		// 4) Commit: value always, action only when a cache is attached.
		dst[s] = best
		if strategy != nil {
			strategy[s] = bestAction
		}
	}

	return nil
}

// Apply is the single-shot entry point: sort, populate, back up once and
// return the fresh value vector. stateptr nil treats every column as its own
// source (a Markov chain). Meant for tests and one-off backups; the driver
// keeps its own buffers and ordering across iterations.
func Apply[R imdp.Real](v []R, trans interval.Collection[R], stateptr []int, cfg Config) ([]R, error) {
	// 1) Validate through the model constructors; nil stateptr means chain.
	var mdp *model.IMDP[R]
	var err error
	if stateptr == nil {
		mdp, err = model.NewIMC(trans)
	} else {
		mdp, err = model.NewIMDP(trans, stateptr)
	}
	if err != nil {
		return nil, err
	}

	// 2) Build and sort the ordering the way the driver would per iteration.
	ord := ordering.For(trans)
	ord.SortStates(v, cfg.SortDirection())
	ord.PopulateSubsets()

	// 3) One batched backup into a fresh buffer.
	dst := make([]R, mdp.NumStates())
	if err := Backup(dst, v, mdp, ord, cfg, nil); err != nil {
		return nil, err
	}

	return dst, nil
}

// block is a half-open source range assigned to one worker.
type block struct{ lo, hi int }

// splitRange partitions [0, n) into at most workers near-equal blocks.
func splitRange(n, workers int) []block {
	if workers > n {
		workers = n
	}
	blocks := make([]block, 0, workers)
	size := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		blocks = append(blocks, block{lo: lo, hi: hi})
	}

	return blocks
}
