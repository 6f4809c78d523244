// SPDX-License-Identifier: MIT
package ordering

import (
	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
)

// occurrence records that a target state appears in column col at stored
// offset off (relative to the column's first stored entry).
type occurrence struct {
	col, off int
}

// Sparse amortizes ordering for compressed-sparse-column collections. Beyond
// the global permutation it keeps, per target, the columns mentioning it, and
// per column a pre-sized buffer that PopulateSubsets refills in value order.
type Sparse[R imdp.Real] struct {
	perm    []int
	occur   [][]occurrence // target -> occurrences across all columns
	subsets [][]int        // column -> stored-entry offsets, value-ordered
}

// NewSparse builds the target→column index for a once per model; the per-call
// work then stays proportional to the stored entries.
func NewSparse[R imdp.Real](a *interval.CSCMatrix[R]) *Sparse[R] {
	n, m := a.NumTargets(), a.NumColumns()
	colptr, rowidx := a.ColPtr(), a.RowIdx()

	occur := make([][]occurrence, n)
	subsets := make([][]int, m)
	for j := 0; j < m; j++ {
		lo, hi := colptr[j], colptr[j+1]
		subsets[j] = make([]int, 0, hi-lo)
		for k := lo; k < hi; k++ {
			i := rowidx[k]
			occur[i] = append(occur[i], occurrence{col: j, off: k - lo})
		}
	}

	return &Sparse[R]{perm: make([]int, n), occur: occur, subsets: subsets}
}

// SortStates recomputes the global permutation; see Dense.SortStates.
func (s *Sparse[R]) SortStates(v []R, dir Direction) {
	sortPerm(s.perm, v, dir)
}

// PopulateSubsets scans the permutation once and appends each target's
// occurrences to its columns' buffers, so every buffer ends up ordered
// consistently with the current values. O(total stored entries).
func (s *Sparse[R]) PopulateSubsets() {
	// 1) Reset every column buffer; capacity was pre-sized at construction.
	for j := range s.subsets {
		s.subsets[j] = s.subsets[j][:0]
	}
	// 2) Walk targets in value order, fanning each one's occurrences out to
	//    its columns — every buffer fills already sorted.
	for _, i := range s.perm {
		for _, occ := range s.occur[i] {
			s.subsets[occ.col] = append(s.subsets[occ.col], occ.off)
		}
	}
}

// Perm returns column j's stored-entry offsets in value order.
func (s *Sparse[R]) Perm(j int) []int { return s.subsets[j] }
