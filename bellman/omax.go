package bellman

import (
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
)

// OMax computes the extremal expectation ⟨p, v⟩ over one ambiguity set by
// order-based water-filling. perm is the iteration order in the desired
// direction: support positions sorted by value, most attractive first. For
// dense columns perm is the global target permutation; for sparse columns it
// is the column's stored-entry offsets from an ordering.Sparse.
//
// The walk starts from p = lower and pours the budget into each position's
// gap until the budget is exhausted. O(n) per set; no allocation.
//
// Returns ErrInfeasible only when the column cannot absorb its own budget,
// which validated constructors rule out.
func OMax[R imdp.Real](set interval.Set[R], v []R, perm []int) (R, error) {
	// 1) Base expectation at p = lower; order does not matter for the dot.
	var total R
	for k := 0; k < set.Len(); k++ {
		if l := set.Lower(k); l != 0 {
			total += l * v[set.Target(k)]
		}
	}

	// 2) Degenerate column: no slack to distribute, the dot is the answer.
	remaining := set.Budget()
	if remaining == 0 {
		return total, nil
	}

	// 3) Water-fill the budget along the permutation, saturating each gap.
	for _, k := range perm {
		g := set.Gap(k)
		if g == 0 {
			continue
		}
		// 3.1) The last partial pour ends the walk.
		if g >= remaining {
			return total + remaining*v[set.Target(k)], nil
		}
		// 3.2) Full pour: saturate this coordinate and move on.
		total += g * v[set.Target(k)]
		remaining -= g
	}

	// 4) Unallocated budget means the column could never sum to one —
	//    validated constructors rule this out.
	return 0, fmt.Errorf("%w: %v budget left unallocated", ErrInfeasible, remaining)
}

// OMaxAssignment is OMax returning the realizing distribution as well,
// written densely into p (length = target count). For tests and strategy
// inspection; the solve path never materializes assignments.
func OMaxAssignment[R imdp.Real](set interval.Set[R], v []R, perm []int, p []R) (R, error) {
	for i := range p {
		p[i] = 0
	}
	for k := 0; k < set.Len(); k++ {
		p[set.Target(k)] = set.Lower(k)
	}

	remaining := set.Budget()
	for _, k := range perm {
		if remaining == 0 {
			break
		}
		g := set.Gap(k)
		if g > remaining {
			g = remaining
		}
		p[set.Target(k)] += g
		remaining -= g
	}
	if remaining > 0 {
		return 0, fmt.Errorf("%w: %v budget left unallocated", ErrInfeasible, remaining)
	}

	var total R
	for i, pi := range p {
		total += pi * v[i]
	}

	return total, nil
}
