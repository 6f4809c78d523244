// SPDX-License-Identifier: MIT
package ordering

import (
	"sort"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
)

// Direction selects the sort order of an ordering. Descending puts the most
// valuable targets first, which makes the water-filling O-max allocate budget
// greedily toward them (best case); Ascending is the worst-case dual.
type Direction int

const (
	// Ascending orders targets by nondecreasing value.
	Ascending Direction = iota
	// Descending orders targets by nonincreasing value.
	Descending
)

// Ordering is the per-backup sort structure consumed by the Bellman
// operators. Implementations are not safe for concurrent mutation; sort on
// one thread, then share read-only.
type Ordering[R imdp.Real] interface {
	// SortStates recomputes the global permutation over v. len(v) must equal
	// the target count the ordering was built for.
	SortStates(v []R, dir Direction)
	// PopulateSubsets redistributes the global permutation into per-column
	// buffers. Must be called after SortStates and before Perm on sparse
	// orderings; a no-op on dense ones.
	PopulateSubsets()
	// Perm returns the iteration order for column j: target indices for dense
	// collections, stored-entry offsets for sparse ones.
	Perm(j int) []int
}

// For builds the ordering matching the collection's storage layout.
func For[R imdp.Real](coll interval.Collection[R]) Ordering[R] {
	switch c := coll.(type) {
	case *interval.CSCMatrix[R]:
		return NewSparse(c)
	default:
		return NewDense[R](coll.NumTargets())
	}
}

// Dense orders all n target indices globally; every column shares it.
type Dense[R imdp.Real] struct {
	perm []int
}

// NewDense allocates a dense ordering over numTargets targets.
func NewDense[R imdp.Real](numTargets int) *Dense[R] {
	return &Dense[R]{perm: make([]int, numTargets)}
}

// SortStates recomputes π = argsort(v, dir). Stable, so ties keep index
// order and iterate sequences stay bit-reproducible.
func (d *Dense[R]) SortStates(v []R, dir Direction) {
	sortPerm(d.perm, v, dir)
}

// PopulateSubsets is a no-op: dense columns iterate π directly.
func (d *Dense[R]) PopulateSubsets() {}

// Perm returns the global permutation, regardless of column.
func (d *Dense[R]) Perm(int) []int { return d.perm }

// sortPerm refills perm with 0..n-1 and argsorts it over v.
func sortPerm[R imdp.Real](perm []int, v []R, dir Direction) {
	for i := range perm {
		perm[i] = i
	}
	if dir == Ascending {
		sort.SliceStable(perm, func(a, b int) bool { return v[perm[a]] < v[perm[b]] })
	} else {
		sort.SliceStable(perm, func(a, b int) bool { return v[perm[a]] > v[perm[b]] })
	}
}
