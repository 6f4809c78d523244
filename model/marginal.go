// SPDX-License-Identifier: MIT
package model

import (
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
)

// Marginal distributes the next value of one state variable, conditioned on
// subsets of the state and action variables. Its ambiguity sets hold one
// column per joint value of (action deps, state deps) in lexicographic order
// with actions varying fastest.
type Marginal[R imdp.Real] struct {
	sets        *interval.Matrix[R]
	stateDeps   []int
	actionDeps  []int
	sourceShape []int // cardinality read along each state dep
	actionShape []int // cardinality read along each action dep
	numActCols  int   // product of actionShape
}

// NewMarginal validates the dependency bookkeeping of a single marginal.
// Cardinality checks against the global model happen later, in NewFactored,
// which knows the global shapes.
func NewMarginal[R imdp.Real](sets *interval.Matrix[R], stateDeps, actionDeps, sourceShape, actionShape []int) (*Marginal[R], error) {
	if sets == nil {
		return nil, fmt.Errorf("model: nil marginal ambiguity sets: %w", imdp.ErrDimensionMismatch)
	}
	if len(stateDeps) != len(sourceShape) {
		return nil, fmt.Errorf("model: %d state deps but %d source dims: %w",
			len(stateDeps), len(sourceShape), imdp.ErrDimensionMismatch)
	}
	if len(actionDeps) != len(actionShape) {
		return nil, fmt.Errorf("model: %d action deps but %d action dims: %w",
			len(actionDeps), len(actionShape), imdp.ErrDimensionMismatch)
	}

	cols := 1
	for _, d := range sourceShape {
		if d <= 0 {
			return nil, fmt.Errorf("model: non-positive source dim %d: %w", d, imdp.ErrDimensionMismatch)
		}
		cols *= d
	}
	numActCols := 1
	for _, d := range actionShape {
		if d <= 0 {
			return nil, fmt.Errorf("model: non-positive action dim %d: %w", d, imdp.ErrDimensionMismatch)
		}
		numActCols *= d
	}
	cols *= numActCols
	if sets.NumColumns() != cols {
		return nil, fmt.Errorf("model: marginal has %d columns, want %d: %w",
			sets.NumColumns(), cols, imdp.ErrDimensionMismatch)
	}

	return &Marginal[R]{
		sets:        sets,
		stateDeps:   append([]int(nil), stateDeps...),
		actionDeps:  append([]int(nil), actionDeps...),
		sourceShape: append([]int(nil), sourceShape...),
		actionShape: append([]int(nil), actionShape...),
		numActCols:  numActCols,
	}, nil
}

// Sets returns the marginal's ambiguity-set collection.
func (mg *Marginal[R]) Sets() *interval.Matrix[R] { return mg.sets }

// StateDeps returns the state-variable indices the marginal reads.
func (mg *Marginal[R]) StateDeps() []int { return mg.stateDeps }

// ActionDeps returns the action-variable indices the marginal reads.
func (mg *Marginal[R]) ActionDeps() []int { return mg.actionDeps }

// SourceShape returns the cardinalities along the state deps.
func (mg *Marginal[R]) SourceShape() []int { return mg.sourceShape }

// ActionShape returns the cardinalities along the action deps.
func (mg *Marginal[R]) ActionShape() []int { return mg.actionShape }

// Sink reports whether the marginal has no stored slice for the given global
// state tuple: some dependency reads a coordinate at or beyond its source
// shape. Sink sources keep their own coordinate unchanged (identity map).
func (mg *Marginal[R]) Sink(state []int) bool {
	for k, dep := range mg.stateDeps {
		if state[dep] >= mg.sourceShape[k] {
			return true
		}
	}

	return false
}

// ColumnOf linearizes the column index for global (state, action) tuples:
// row-major over the state deps, then row-major over the action deps, actions
// varying fastest. Sink sources have no column; callers check Sink first.
func (mg *Marginal[R]) ColumnOf(state, action []int) int {
	srcIdx := 0
	for k, dep := range mg.stateDeps {
		srcIdx = srcIdx*mg.sourceShape[k] + state[dep]
	}
	actIdx := 0
	for k, dep := range mg.actionDeps {
		actIdx = actIdx*mg.actionShape[k] + action[dep]
	}

	return srcIdx*mg.numActCols + actIdx
}
