// SPDX-License-Identifier: MIT
package model

import (
	"fmt"

	"github.com/katalvlaran/imdp"
)

// Factored is an orthogonally decomposed interval process: one marginal per
// state variable, the joint kernel being their product. The joint box
// ambiguity set is the Cartesian product of the marginals' boxes and is never
// stored.
type Factored[R imdp.Real] struct {
	marginals  []*Marginal[R]
	stateVals  []int
	actionVals []int
	kind       Kind
}

// NewFactored validates a tuple of marginals against the global state and
// action cardinalities. Marginal i distributes state variable i, so its
// target cardinality must equal stateVals[i]; dependency indices must be in
// range and source shapes componentwise within the globals.
func NewFactored[R imdp.Real](marginals []*Marginal[R], stateVals, actionVals []int) (*Factored[R], error) {
	// Stage 1 (Validate shapes): variable counts and cardinalities first.
	if len(stateVals) == 0 || len(actionVals) == 0 {
		return nil, fmt.Errorf("model: state/action variable counts must be positive: %w", imdp.ErrDimensionMismatch)
	}
	for _, d := range stateVals {
		if d <= 0 {
			return nil, fmt.Errorf("model: non-positive state cardinality %d: %w", d, imdp.ErrDimensionMismatch)
		}
	}
	for _, d := range actionVals {
		if d <= 0 {
			return nil, fmt.Errorf("model: non-positive action cardinality %d: %w", d, imdp.ErrDimensionMismatch)
		}
	}
	if len(marginals) != len(stateVals) {
		return nil, fmt.Errorf("model: %d marginals for %d state variables: %w",
			len(marginals), len(stateVals), imdp.ErrDimensionMismatch)
	}

	// Stage 2 (Validate marginals): each against the globals, tracking
	// whether any state variable is read twice.
	seen := make(map[int]bool)
	disjoint := true
	for i, mg := range marginals {
		// 2.1) Presence and target cardinality: marginal i moves variable i.
		if mg == nil {
			return nil, fmt.Errorf("model: nil marginal %d: %w", i, imdp.ErrDimensionMismatch)
		}
		if mg.sets.NumTargets() != stateVals[i] {
			return nil, fmt.Errorf("model: marginal %d targets %d states, variable has %d: %w",
				i, mg.sets.NumTargets(), stateVals[i], imdp.ErrDimensionMismatch)
		}
		// 2.2) State deps: in range, source dims within the cardinality,
		//      overlaps recorded for the Stage 3 classification.
		for k, dep := range mg.stateDeps {
			if dep < 0 || dep >= len(stateVals) {
				return nil, fmt.Errorf("model: marginal %d state dep %d out of range: %w", i, dep, imdp.ErrDimensionMismatch)
			}
			if mg.sourceShape[k] > stateVals[dep] {
				return nil, fmt.Errorf("model: marginal %d source dim %d exceeds cardinality %d: %w",
					i, mg.sourceShape[k], stateVals[dep], imdp.ErrDimensionMismatch)
			}
			if seen[dep] {
				disjoint = false
			}
			seen[dep] = true
		}
		// 2.3) Action deps: same discipline, no overlap tracking needed.
		for k, dep := range mg.actionDeps {
			if dep < 0 || dep >= len(actionVals) {
				return nil, fmt.Errorf("model: marginal %d action dep %d out of range: %w", i, dep, imdp.ErrDimensionMismatch)
			}
			if mg.actionShape[k] > actionVals[dep] {
				return nil, fmt.Errorf("model: marginal %d action dim %d exceeds cardinality %d: %w",
					i, mg.actionShape[k], actionVals[dep], imdp.ErrDimensionMismatch)
			}
		}
	}

	// Stage 3 (Classify): disjoint dependencies keep the exact class,
	// overlaps demote to the McCormick-relaxed one.
	kind := KindFactoredIMDP
	if !disjoint {
		kind = KindFactoredRMDP
	}

	// Stage 4 (Finalize): defensive copies of the shape arrays.
	return &Factored[R]{
		marginals:  marginals,
		stateVals:  append([]int(nil), stateVals...),
		actionVals: append([]int(nil), actionVals...),
		kind:       kind,
	}, nil
}

// NumStates returns the joint state count, the product of the cardinalities.
func (f *Factored[R]) NumStates() int {
	n := 1
	for _, d := range f.stateVals {
		n *= d
	}

	return n
}

// NumActions returns the joint action count.
func (f *Factored[R]) NumActions() int {
	n := 1
	for _, d := range f.actionVals {
		n *= d
	}

	return n
}

// Kind returns KindFactoredIMDP for pairwise-disjoint state dependencies,
// KindFactoredRMDP otherwise.
func (f *Factored[R]) Kind() Kind { return f.kind }

// NumVars returns the number of state variables (= marginals).
func (f *Factored[R]) NumVars() int { return len(f.stateVals) }

// StateValues returns the per-variable state cardinalities.
func (f *Factored[R]) StateValues() []int { return f.stateVals }

// ActionValues returns the per-variable action cardinalities.
func (f *Factored[R]) ActionValues() []int { return f.actionVals }

// Marginal returns marginal i.
func (f *Factored[R]) Marginal(i int) *Marginal[R] { return f.marginals[i] }

// LinearState row-major-linearizes a state tuple, rejecting wrong
// dimensionality or out-of-range coordinates with imdp.ErrInvalidState.
func (f *Factored[R]) LinearState(tuple []int) (int, error) {
	if len(tuple) != len(f.stateVals) {
		return 0, fmt.Errorf("model: state tuple has %d coordinates, want %d: %w",
			len(tuple), len(f.stateVals), imdp.ErrInvalidState)
	}
	idx := 0
	for k, t := range tuple {
		if t < 0 || t >= f.stateVals[k] {
			return 0, fmt.Errorf("model: coordinate %d = %d out of [0,%d): %w",
				k, t, f.stateVals[k], imdp.ErrInvalidState)
		}
		idx = idx*f.stateVals[k] + t
	}

	return idx, nil
}

// StateTuple decodes a linear state index into buf, which must have length
// NumVars. The inverse of LinearState.
func (f *Factored[R]) StateTuple(idx int, buf []int) {
	for k := len(f.stateVals) - 1; k >= 0; k-- {
		buf[k] = idx % f.stateVals[k]
		idx /= f.stateVals[k]
	}
}

// ActionTuple decodes a linear action index into buf, length NumActionVars.
func (f *Factored[R]) ActionTuple(idx int, buf []int) {
	for k := len(f.actionVals) - 1; k >= 0; k-- {
		buf[k] = idx % f.actionVals[k]
		idx /= f.actionVals[k]
	}
}
