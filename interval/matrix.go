// SPDX-License-Identifier: MIT
package interval

import (
	"fmt"
	"math"

	"github.com/katalvlaran/imdp"
)

// Matrix is a dense column-major collection of interval ambiguity sets.
// It keeps (lower, gap) rather than (lower, upper): the Bellman water-filling
// consumes gaps directly and the subtraction is done once here.
type Matrix[R imdp.Real] struct {
	n, m   int
	lower  []R // n*m, column-major
	gap    []R // n*m, column-major
	budget []R // m, 1 − column sum of lower
}

// NewMatrix builds a validated dense collection from lower and upper bounds,
// both of length numTargets*numColumns in column-major order.
//
// It returns imdp.ErrDimensionMismatch on shape violations and
// imdp.ErrInvalidAmbiguitySet on the first column that is out of bounds or
// infeasible. Complexity: O(n·m), one sweep.
func NewMatrix[R imdp.Real](numTargets, numColumns int, lower, upper []R) (*Matrix[R], error) {
	// Stage 1 (Validate shape): dimensions before touching any entry.
	if numTargets <= 0 || numColumns <= 0 {
		return nil, fmt.Errorf("interval: shape %dx%d: %w", numTargets, numColumns, imdp.ErrDimensionMismatch)
	}
	if len(lower) != numTargets*numColumns || len(upper) != numTargets*numColumns {
		return nil, fmt.Errorf("interval: bounds length %d/%d, want %d: %w",
			len(lower), len(upper), numTargets*numColumns, imdp.ErrDimensionMismatch)
	}

	// Stage 2 (Sweep): per column, check every bound, derive the gap, and
	// accumulate the sums the feasibility test and the budget need.
	gap := make([]R, len(lower))
	budget := make([]R, numColumns)
	for j := 0; j < numColumns; j++ {
		var sumLo, sumHi R
		base := j * numTargets
		for i := 0; i < numTargets; i++ {
			lo, hi := lower[base+i], upper[base+i]
			if err := checkBound(float64(lo), float64(hi), i, j); err != nil {
				return nil, err
			}
			gap[base+i] = hi - lo
			sumLo += lo
			sumHi += hi
		}
		if err := checkFeasible(float64(sumLo), float64(sumHi), j); err != nil {
			return nil, err
		}
		budget[j] = 1 - sumLo
	}

	// Stage 3 (Finalize): copy the lower bounds; gaps replace the uppers.
	low := make([]R, len(lower))
	copy(low, lower)

	return &Matrix[R]{n: numTargets, m: numColumns, lower: low, gap: gap, budget: budget}, nil
}

// NewMatrixUnchecked wraps pre-validated (lower, gap, budget) arrays without
// copying or re-checking. Internal fast path for operations known to preserve
// the invariants, e.g. projecting an IMDP through a fixed strategy.
func NewMatrixUnchecked[R imdp.Real](numTargets, numColumns int, lower, gap, budget []R) *Matrix[R] {
	return &Matrix[R]{n: numTargets, m: numColumns, lower: lower, gap: gap, budget: budget}
}

// NumTargets returns the number of target states per column.
func (a *Matrix[R]) NumTargets() int { return a.n }

// NumColumns returns the number of (source, action) columns.
func (a *Matrix[R]) NumColumns() int { return a.m }

// Set returns the zero-copy view of column j.
func (a *Matrix[R]) Set(j int) Set[R] {
	base := j * a.n

	return Set[R]{
		index:  nil,
		lower:  a.lower[base : base+a.n],
		gap:    a.gap[base : base+a.n],
		budget: a.budget[j],
	}
}

// checkBound validates a single (lower, upper) pair.
func checkBound(lo, hi float64, i, j int) error {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return fmt.Errorf("interval: NaN bound at [%d,%d]: %w", i, j, imdp.ErrInvalidAmbiguitySet)
	}
	if lo < 0 {
		return fmt.Errorf("interval: lower[%d,%d] = %g < 0: %w", i, j, lo, imdp.ErrInvalidAmbiguitySet)
	}
	if hi < lo {
		return fmt.Errorf("interval: upper[%d,%d] = %g < lower = %g: %w", i, j, hi, lo, imdp.ErrInvalidAmbiguitySet)
	}
	if hi > 1 {
		return fmt.Errorf("interval: upper[%d,%d] = %g > 1: %w", i, j, hi, imdp.ErrInvalidAmbiguitySet)
	}

	return nil
}

// checkFeasible validates Σ lower ≤ 1 ≤ Σ upper for one column.
func checkFeasible(sumLo, sumHi float64, j int) error {
	if sumLo > 1 {
		return fmt.Errorf("interval: column %d lower bounds sum to %g > 1: %w", j, sumLo, imdp.ErrInvalidAmbiguitySet)
	}
	if sumHi < 1 {
		return fmt.Errorf("interval: column %d upper bounds sum to %g < 1: %w", j, sumHi, imdp.ErrInvalidAmbiguitySet)
	}

	return nil
}
