// SPDX-License-Identifier: MIT
package interval

import (
	"fmt"

	"github.com/katalvlaran/imdp"
)

// CSCMatrix is a compressed-sparse-column collection of interval ambiguity
// sets. Only explicitly stored entries may carry probability mass; absent
// entries are exactly zero on both bounds. Row indices within a column must
// be strictly increasing.
type CSCMatrix[R imdp.Real] struct {
	n, m   int
	colptr []int // m+1
	rowidx []int // nnz
	lower  []R   // nnz
	gap    []R   // nnz
	budget []R   // m
}

// NewCSCMatrix builds a validated sparse collection. colptr has length
// numColumns+1 with colptr[0]=0, nondecreasing; rowidx, lower and upper have
// length colptr[numColumns]. Complexity: O(nnz), one sweep.
func NewCSCMatrix[R imdp.Real](numTargets int, colptr, rowidx []int, lower, upper []R) (*CSCMatrix[R], error) {
	// Stage 1 (Validate shape): the offset array pins every other length.
	if numTargets <= 0 || len(colptr) < 2 {
		return nil, fmt.Errorf("interval: csc shape: %w", imdp.ErrDimensionMismatch)
	}
	m := len(colptr) - 1
	if colptr[0] != 0 {
		return nil, fmt.Errorf("interval: colptr[0] = %d, want 0: %w", colptr[0], imdp.ErrDimensionMismatch)
	}
	nnz := colptr[m]
	if len(rowidx) != nnz || len(lower) != nnz || len(upper) != nnz {
		return nil, fmt.Errorf("interval: csc arrays length %d/%d/%d, want %d: %w",
			len(rowidx), len(lower), len(upper), nnz, imdp.ErrDimensionMismatch)
	}

	// Stage 2 (Sweep): per column, check structure (strictly increasing
	// rows) and bounds, derive gaps and budgets.
	gap := make([]R, nnz)
	budget := make([]R, m)
	for j := 0; j < m; j++ {
		lo, hi := colptr[j], colptr[j+1]
		if hi < lo {
			return nil, fmt.Errorf("interval: colptr decreases at column %d: %w", j, imdp.ErrDimensionMismatch)
		}

		var sumLo, sumHi R
		prev := -1
		for k := lo; k < hi; k++ {
			i := rowidx[k]
			if i <= prev || i >= numTargets {
				return nil, fmt.Errorf("interval: row index %d at column %d out of order or range: %w",
					i, j, imdp.ErrDimensionMismatch)
			}
			prev = i
			if err := checkBound(float64(lower[k]), float64(upper[k]), i, j); err != nil {
				return nil, err
			}
			gap[k] = upper[k] - lower[k]
			sumLo += lower[k]
			sumHi += upper[k]
		}
		if err := checkFeasible(float64(sumLo), float64(sumHi), j); err != nil {
			return nil, err
		}
		budget[j] = 1 - sumLo
	}

	// Stage 3 (Finalize): defensive copies of the caller's arrays.
	low := make([]R, nnz)
	copy(low, lower)
	ridx := make([]int, nnz)
	copy(ridx, rowidx)
	cptr := make([]int, m+1)
	copy(cptr, colptr)

	return &CSCMatrix[R]{n: numTargets, m: m, colptr: cptr, rowidx: ridx, lower: low, gap: gap, budget: budget}, nil
}

// NewCSCMatrixUnchecked wraps pre-validated CSC arrays without copying or
// re-checking; the sparse counterpart of NewMatrixUnchecked.
func NewCSCMatrixUnchecked[R imdp.Real](numTargets int, colptr, rowidx []int, lower, gap, budget []R) *CSCMatrix[R] {
	return &CSCMatrix[R]{
		n: numTargets, m: len(colptr) - 1,
		colptr: colptr, rowidx: rowidx,
		lower: lower, gap: gap, budget: budget,
	}
}

// NumTargets returns the number of target states per column.
func (a *CSCMatrix[R]) NumTargets() int { return a.n }

// NumColumns returns the number of (source, action) columns.
func (a *CSCMatrix[R]) NumColumns() int { return a.m }

// NNZ returns the number of stored entries.
func (a *CSCMatrix[R]) NNZ() int { return a.colptr[a.m] }

// ColPtr exposes the column offset array (read-only; do not mutate).
func (a *CSCMatrix[R]) ColPtr() []int { return a.colptr }

// RowIdx exposes the row index array (read-only; do not mutate).
func (a *CSCMatrix[R]) RowIdx() []int { return a.rowidx }

// Set returns the zero-copy view of column j.
func (a *CSCMatrix[R]) Set(j int) Set[R] {
	lo, hi := a.colptr[j], a.colptr[j+1]

	return Set[R]{
		index:  a.rowidx[lo:hi],
		lower:  a.lower[lo:hi],
		gap:    a.gap[lo:hi],
		budget: a.budget[j],
	}
}
