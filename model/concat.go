// SPDX-License-Identifier: MIT
package model

import (
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
)

// ConcatIntervalColumns stacks per-source ambiguity-set collections into one
// flat collection and emits the matching stateptr: block s contributes the
// action columns of source s, in order, and stateptr holds the cumulative
// action counts starting at 0.
//
// Every block must target the same number of states and carry at least one
// column. The blocks are already validated, so the copy goes through the
// unchecked constructor.
func ConcatIntervalColumns[R imdp.Real](blocks []*interval.Matrix[R]) (*interval.Matrix[R], []int, error) {
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("model: no blocks to concatenate: %w", imdp.ErrDimensionMismatch)
	}
	n := blocks[0].NumTargets()

	m := 0
	stateptr := make([]int, len(blocks)+1)
	for s, b := range blocks {
		if b == nil {
			return nil, nil, fmt.Errorf("model: nil block %d: %w", s, imdp.ErrDimensionMismatch)
		}
		if b.NumTargets() != n {
			return nil, nil, fmt.Errorf("model: block %d targets %d states, want %d: %w",
				s, b.NumTargets(), n, imdp.ErrDimensionMismatch)
		}
		m += b.NumColumns()
		stateptr[s+1] = m
	}

	lower := make([]R, n*m)
	gap := make([]R, n*m)
	budget := make([]R, m)
	j := 0
	for _, b := range blocks {
		for c := 0; c < b.NumColumns(); c++ {
			set := b.Set(c)
			base := j * n
			for k := 0; k < set.Len(); k++ {
				lower[base+k] = set.Lower(k)
				gap[base+k] = set.Gap(k)
			}
			budget[j] = set.Budget()
			j++
		}
	}

	return interval.NewMatrixUnchecked(n, m, lower, gap, budget), stateptr, nil
}
