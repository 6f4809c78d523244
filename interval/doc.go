// SPDX-License-Identifier: MIT

// Package interval defines validated interval ambiguity sets: collections of
// probability distributions constrained coordinatewise by lower and upper
// bounds and summing to one.
//
// An ambiguity-set collection is an n × m pair of matrices (lower, gap) stored
// column-major, one column per (source, action) pair, n target states per
// column. The set described by column j is
//
//	{ p ∈ ℝⁿ : lower[:,j] ≤ p ≤ lower[:,j]+gap[:,j], Σᵢ pᵢ = 1 }.
//
// Two storage layouts are provided:
//
//   - Matrix    — dense column-major, for kernels with few structural zeros
//   - CSCMatrix — compressed sparse column, for kernels whose columns touch
//     only a handful of target states
//
// Both satisfy the Collection interface and hand out per-column Set views
// carrying lower/upper/gap accessors and the precomputed budget
// B_j = 1 − Σᵢ lower[i,j], the slack mass the adversary may distribute.
//
// Invariants, checked once at construction (never on the hot path):
//
//   - 0 ≤ lower[i,j], 0 ≤ gap[i,j], lower[i,j]+gap[i,j] ≤ 1
//   - Σᵢ lower[i,j] ≤ 1 ≤ Σᵢ (lower[i,j]+gap[i,j])   (nonempty set)
//
// Complexity:
//
//	– Construction: O(n·m) dense, O(nnz) sparse (single validation sweep)
//	– Set(j):       O(1) (views alias the backing arrays, no copies)
//	– Vertices:     O(k! · n) for a column with k free coordinates; intended
//	   for tests and tiny sets only
//
// Errors (sentinel, from the root package):
//
//	– imdp.ErrDimensionMismatch   on malformed shapes or offset arrays
//	– imdp.ErrInvalidAmbiguitySet on any violated bound or infeasible column
package interval
