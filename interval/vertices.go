// SPDX-License-Identifier: MIT
package interval

import "github.com/katalvlaran/imdp"

// Vertices enumerates all extreme points of the set as dense length-n vectors,
// n being the target count of the owning collection.
//
// Every vertex of { p : l ≤ p ≤ l+g, Σp = 1 } is realized by some priority
// order over the coordinates: start from p = l and greedily pour the budget
// into coordinates in that order, saturating each gap until the budget runs
// out. Enumerating all orders of the free coordinates (gap > 0) therefore
// covers every vertex; duplicates arising from orders that saturate the same
// prefix are filtered out.
//
// Factorial in the number of free coordinates — intended for tests and tiny
// sets only, never on the solve path.
func (s Set[R]) Vertices(numTargets int) [][]R {
	free := make([]int, 0, s.Len())
	for k := 0; k < s.Len(); k++ {
		if s.gap[k] > 0 {
			free = append(free, k)
		}
	}

	base := make([]R, numTargets)
	for k := 0; k < s.Len(); k++ {
		base[s.Target(k)] = s.lower[k]
	}

	if s.budget == 0 || len(free) == 0 {
		v := make([]R, numTargets)
		copy(v, base)

		return [][]R{v}
	}

	var out [][]R
	perm := make([]int, len(free))
	copy(perm, free)
	permute(perm, len(perm), func(order []int) {
		v := make([]R, numTargets)
		copy(v, base)
		r := s.budget
		for _, k := range order {
			d := s.gap[k]
			if d > r {
				d = r
			}
			v[s.Target(k)] += d
			r -= d
			if r == 0 {
				break
			}
		}
		if !containsVector(out, v) {
			out = append(out, v)
		}
	})

	return out
}

// permute runs visit on every permutation of a[:k] (Heap's algorithm).
func permute[T any](a []T, k int, visit func([]T)) {
	if k == 1 {
		visit(a)

		return
	}
	for i := 0; i < k; i++ {
		permute(a, k-1, visit)
		if k%2 == 0 {
			a[i], a[k-1] = a[k-1], a[i]
		} else {
			a[0], a[k-1] = a[k-1], a[0]
		}
	}
}

// containsVector reports whether v is already present, comparing exactly:
// identical saturation prefixes produce bitwise-identical vertices.
func containsVector[R imdp.Real](vs [][]R, v []R) bool {
	for _, w := range vs {
		same := true
		for i := range v {
			if v[i] != w[i] {
				same = false

				break
			}
		}
		if same {
			return true
		}
	}

	return false
}
