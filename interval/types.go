// SPDX-License-Identifier: MIT
package interval

import "github.com/katalvlaran/imdp"

// Collection is the read-only surface shared by the dense and sparse
// ambiguity-set layouts. The Bellman operators dispatch on the concrete type
// to pick matching ordering structures; everything else goes through Set views.
type Collection[R imdp.Real] interface {
	// NumTargets returns n, the number of target states per column.
	NumTargets() int
	// NumColumns returns m, the number of (source, action) columns.
	NumColumns() int
	// Set returns the view of column j. j must be in [0, NumColumns).
	Set(j int) Set[R]
}

// Set is a zero-copy view of one ambiguity-set column. Entries are addressed
// by support position k ∈ [0, Len); Target maps a position back to the target
// state index. For dense columns the support is all of [0, n) and positions
// coincide with target indices.
type Set[R imdp.Real] struct {
	index  []int // nil for dense columns
	lower  []R
	gap    []R
	budget R
}

// Len returns the support size of the column.
func (s Set[R]) Len() int { return len(s.lower) }

// Target returns the target state index of support position k.
func (s Set[R]) Target(k int) int {
	if s.index == nil {
		return k
	}

	return s.index[k]
}

// Lower returns the lower probability bound at support position k.
func (s Set[R]) Lower(k int) R { return s.lower[k] }

// Gap returns upper−lower at support position k.
func (s Set[R]) Gap(k int) R { return s.gap[k] }

// Upper returns the upper probability bound at support position k.
func (s Set[R]) Upper(k int) R { return s.lower[k] + s.gap[k] }

// Budget returns 1 − Σ lower over the column: the mass left to distribute.
func (s Set[R]) Budget() R { return s.budget }

// Dense reports whether the view addresses a dense column, i.e. support
// positions coincide with target indices.
func (s Set[R]) Dense() bool { return s.index == nil }
