// SPDX-License-Identifier: MIT

// Package ordering maintains value-vector orderings shared across Bellman
// sources.
//
// The O-maximization step needs, for every source column, the target indices
// sorted by the current value vector. Sorting per column is wasteful: the
// value vector is the same for every column within one backup. This package
// amortizes the work into one global argsort per backup plus, for sparse
// kernels, a linear redistribution pass that filters the global permutation
// down to each column's support.
//
// Two implementations back the two ambiguity-set layouts:
//
//   - Dense  — a single permutation π of all target indices; Perm(j) returns
//     π itself for every column
//   - Sparse — π plus a target→occurrences index and per-column offset
//     buffers; Perm(j) returns column j's stored-entry offsets ordered by the
//     current values
//
// Protocol per backup, on a single thread, before the parallel region:
//
//	ord.SortStates(V, dir)  // O(n log n)
//	ord.PopulateSubsets()   // O(total stored entries); no-op for Dense
//
// After that, Perm is safe for concurrent readers: the arrays are never
// mutated inside the parallel region.
//
// Invariant: after PopulateSubsets, iterating Perm(j) visits exactly the
// stored entries of column j, ordered by the current value vector in the
// requested direction.
package ordering
