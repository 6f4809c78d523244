// SPDX-License-Identifier: MIT
package model

import (
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
)

// IMDP is a flat interval Markov decision process: a square ambiguity-set
// collection (targets = states) plus the stateptr offsets grouping columns
// into per-state action blocks.
type IMDP[R imdp.Real] struct {
	trans    interval.Collection[R]
	stateptr []int
}

// NewIMDP validates and wraps a transition collection with its stateptr.
//
// Requirements: trans is square (NumTargets states), stateptr[0]=0, strictly
// increasing, stateptr[|S|] = NumColumns. Violations return
// imdp.ErrDimensionMismatch.
func NewIMDP[R imdp.Real](trans interval.Collection[R], stateptr []int) (*IMDP[R], error) {
	if trans == nil {
		return nil, fmt.Errorf("model: nil transition collection: %w", imdp.ErrDimensionMismatch)
	}
	n := trans.NumTargets()
	if len(stateptr) != n+1 {
		return nil, fmt.Errorf("model: stateptr length %d, want %d: %w", len(stateptr), n+1, imdp.ErrDimensionMismatch)
	}
	if stateptr[0] != 0 {
		return nil, fmt.Errorf("model: stateptr[0] = %d, want 0: %w", stateptr[0], imdp.ErrDimensionMismatch)
	}
	for s := 0; s < n; s++ {
		if stateptr[s+1] <= stateptr[s] {
			return nil, fmt.Errorf("model: stateptr not strictly increasing at state %d: %w", s, imdp.ErrDimensionMismatch)
		}
	}
	if stateptr[n] != trans.NumColumns() {
		return nil, fmt.Errorf("model: stateptr[%d] = %d, want %d columns: %w",
			n, stateptr[n], trans.NumColumns(), imdp.ErrDimensionMismatch)
	}

	ptr := make([]int, len(stateptr))
	copy(ptr, stateptr)

	return &IMDP[R]{trans: trans, stateptr: ptr}, nil
}

// NewIMC wraps a square collection as an interval Markov chain: one action
// per state, stateptr the identity offsets.
func NewIMC[R imdp.Real](trans interval.Collection[R]) (*IMDP[R], error) {
	if trans == nil {
		return nil, fmt.Errorf("model: nil transition collection: %w", imdp.ErrDimensionMismatch)
	}
	if trans.NumColumns() != trans.NumTargets() {
		return nil, fmt.Errorf("model: chain needs %d columns, got %d: %w",
			trans.NumTargets(), trans.NumColumns(), imdp.ErrDimensionMismatch)
	}
	stateptr := make([]int, trans.NumTargets()+1)
	for s := range stateptr {
		stateptr[s] = s
	}

	return &IMDP[R]{trans: trans, stateptr: stateptr}, nil
}

// NumStates returns the number of states.
func (m *IMDP[R]) NumStates() int { return len(m.stateptr) - 1 }

// NumChoices returns the total number of (source, action) columns.
func (m *IMDP[R]) NumChoices() int { return m.stateptr[len(m.stateptr)-1] }

// Kind returns KindIMDP.
func (m *IMDP[R]) Kind() Kind { return KindIMDP }

// Transitions returns the underlying ambiguity-set collection.
func (m *IMDP[R]) Transitions() interval.Collection[R] { return m.trans }

// StatePtr returns the action-offset array (read-only; do not mutate).
func (m *IMDP[R]) StatePtr() []int { return m.stateptr }

// Actions returns the half-open column range [lo, hi) of state s.
func (m *IMDP[R]) Actions(s int) (lo, hi int) {
	return m.stateptr[s], m.stateptr[s+1]
}

// Restrict projects the process through a stationary strategy: the result is
// the interval Markov chain keeping, for each state, only the chosen action's
// column. Strategy entries are action indices relative to the state's block.
//
// The projection preserves every construction invariant, so the copy goes
// through the unchecked constructors.
func (m *IMDP[R]) Restrict(strategy []int) (*IMDP[R], error) {
	// 1) Validate the strategy's shape and every action index against its
	//    state's block before copying anything.
	n := m.NumStates()
	if len(strategy) != n {
		return nil, fmt.Errorf("model: strategy length %d, want %d: %w", len(strategy), n, imdp.ErrDimensionMismatch)
	}
	for s := 0; s < n; s++ {
		if a := strategy[s]; a < 0 || m.stateptr[s]+a >= m.stateptr[s+1] {
			return nil, fmt.Errorf("model: strategy action %d at state %d out of range: %w", strategy[s], s, imdp.ErrInvalidState)
		}
	}

	// 2) Extract the chosen column per state, preserving the layout.
	switch trans := m.trans.(type) {
	case *interval.Matrix[R]:
		// 2.1) Dense: positions coincide with targets, copy straight.
		lower := make([]R, n*n)
		gap := make([]R, n*n)
		budget := make([]R, n)
		for s := 0; s < n; s++ {
			set := trans.Set(m.stateptr[s] + strategy[s])
			base := s * n
			for k := 0; k < set.Len(); k++ {
				lower[base+k] = set.Lower(k)
				gap[base+k] = set.Gap(k)
			}
			budget[s] = set.Budget()
		}

		// 2.2) The projection preserves every invariant — unchecked path.
		return NewIMC[R](interval.NewMatrixUnchecked(n, n, lower, gap, budget))
	case *interval.CSCMatrix[R]:
		// 2.3) Sparse: rebuild the offsets while appending the kept
		//      columns' stored entries.
		colptr := make([]int, n+1)
		var rowidx []int
		var lower, gap []R
		budget := make([]R, n)
		for s := 0; s < n; s++ {
			set := trans.Set(m.stateptr[s] + strategy[s])
			for k := 0; k < set.Len(); k++ {
				rowidx = append(rowidx, set.Target(k))
				lower = append(lower, set.Lower(k))
				gap = append(gap, set.Gap(k))
			}
			colptr[s+1] = len(rowidx)
			budget[s] = set.Budget()
		}

		return NewIMC[R](interval.NewCSCMatrixUnchecked(n, colptr, rowidx, lower, gap, budget))
	default:
		return nil, fmt.Errorf("model: unsupported collection %T: %w", m.trans, imdp.ErrDimensionMismatch)
	}
}
