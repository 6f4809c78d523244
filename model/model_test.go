// SPDX-License-Identifier: MIT
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
	"github.com/katalvlaran/imdp/model"
)

func denseMatrix(t *testing.T, targets, cols int, lower, upper []float64) *interval.Matrix[float64] {
	t.Helper()
	m, err := interval.NewMatrix(targets, cols, lower, upper)
	require.NoError(t, err)

	return m
}

// TestNewIMDP_Valid wires a 2-state process where state 0 has two actions.
func TestNewIMDP_Valid(t *testing.T) {
	m := denseMatrix(t, 2, 3,
		[]float64{0.2, 0.3, 0.5, 0.1, 0, 1},
		[]float64{0.8, 0.7, 0.9, 0.5, 0, 1})

	mdp, err := model.NewIMDP[float64](m, []int{0, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 2, mdp.NumStates())
	assert.Equal(t, 3, mdp.NumChoices())
	assert.Equal(t, model.KindIMDP, mdp.Kind())

	lo, hi := mdp.Actions(0)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 2, hi)
}

// TestNewIMDP_StateptrErrors covers every stateptr invariant.
func TestNewIMDP_StateptrErrors(t *testing.T) {
	m := denseMatrix(t, 2, 2,
		[]float64{0.2, 0.3, 0.5, 0.1},
		[]float64{0.8, 0.7, 0.9, 0.5})

	cases := []struct {
		name     string
		stateptr []int
	}{
		{"wrong length", []int{0, 2}},
		{"nonzero start", []int{1, 2, 2}},
		{"not increasing", []int{0, 0, 2}},
		{"wrong total", []int{0, 1, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.NewIMDP[float64](m, tc.stateptr)
			assert.ErrorIs(t, err, imdp.ErrDimensionMismatch)
		})
	}
}

// TestNewIMC rejects non-square collections and builds identity offsets.
func TestNewIMC(t *testing.T) {
	square := denseMatrix(t, 2, 2,
		[]float64{0.2, 0.3, 0.5, 0.1},
		[]float64{0.8, 0.7, 0.9, 0.5})
	chain, err := model.NewIMC[float64](square)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, chain.StatePtr())

	wide := denseMatrix(t, 2, 3,
		[]float64{0.2, 0.3, 0.5, 0.1, 0, 1},
		[]float64{0.8, 0.7, 0.9, 0.5, 0, 1})
	_, err = model.NewIMC[float64](wide)
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch)
}

// TestRestrict projects a two-action state through a strategy and keeps the
// chosen column.
func TestRestrict(t *testing.T) {
	m := denseMatrix(t, 2, 3,
		[]float64{0.2, 0.3, 0.5, 0.1, 0, 1},
		[]float64{0.8, 0.7, 0.9, 0.5, 0, 1})
	mdp, err := model.NewIMDP[float64](m, []int{0, 2, 3})
	require.NoError(t, err)

	chain, err := mdp.Restrict([]int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, chain.NumChoices(), "one column per state survives")

	kept := chain.Transitions().Set(0)
	assert.InDelta(t, 0.5, float64(kept.Lower(0)), 1e-12, "state 0 keeps its second action")
	assert.InDelta(t, 0.1, float64(kept.Lower(1)), 1e-12)

	_, err = mdp.Restrict([]int{2, 0})
	assert.ErrorIs(t, err, imdp.ErrInvalidState, "action index beyond the block")

	_, err = mdp.Restrict([]int{0})
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch)
}

// TestRestrict_SparseKeepsLayout verifies the CSC projection path.
func TestRestrict_SparseKeepsLayout(t *testing.T) {
	sp, err := interval.NewCSCMatrix(2,
		[]int{0, 1, 2, 3},
		[]int{1, 0, 1},
		[]float64{1, 1, 1},
		[]float64{1, 1, 1})
	require.NoError(t, err)

	mdp, err := model.NewIMDP[float64](sp, []int{0, 2, 3})
	require.NoError(t, err)

	chain, err := mdp.Restrict([]int{1, 0})
	require.NoError(t, err)

	csc, ok := chain.Transitions().(*interval.CSCMatrix[float64])
	require.True(t, ok, "sparse models stay sparse under projection")
	assert.Equal(t, 2, csc.NNZ())
	assert.Equal(t, 0, csc.Set(0).Target(0), "state 0 keeps its second action's entry")
}

// TestConcatIntervalColumns stacks per-source blocks and emits cumulative
// offsets.
func TestConcatIntervalColumns(t *testing.T) {
	block0 := denseMatrix(t, 2, 2,
		[]float64{0.2, 0.3, 0.5, 0.1},
		[]float64{0.8, 0.7, 0.9, 0.5})
	block1 := denseMatrix(t, 2, 1,
		[]float64{0, 1},
		[]float64{0, 1})

	joined, stateptr, err := model.ConcatIntervalColumns([]*interval.Matrix[float64]{block0, block1})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 3}, stateptr)
	assert.Equal(t, 3, joined.NumColumns())
	assert.InDelta(t, 0.5, float64(joined.Set(1).Lower(0)), 1e-12, "columns keep source order")
	assert.Equal(t, 1.0, float64(joined.Set(2).Lower(1)))

	mismatched := denseMatrix(t, 3, 1,
		[]float64{0.1, 0.2, 0.3},
		[]float64{0.5, 0.6, 0.7})
	_, _, err = model.ConcatIntervalColumns([]*interval.Matrix[float64]{block0, mismatched})
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch)
}

// TestNewFactored_Validation covers the marginal bookkeeping checks.
func TestNewFactored_Validation(t *testing.T) {
	sets := denseMatrix(t, 2, 2,
		[]float64{0.2, 0.3, 0.5, 0.1},
		[]float64{0.8, 0.7, 0.9, 0.5})

	mg, err := model.NewMarginal[float64](sets, []int{0}, nil, []int{2}, nil)
	require.NoError(t, err)

	// Column count must match the dependency shapes.
	_, err = model.NewMarginal[float64](sets, []int{0}, nil, []int{3}, nil)
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch)

	// Marginal targets must match the variable cardinality.
	_, err = model.NewFactored([]*model.Marginal[float64]{mg}, []int{3}, []int{1})
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch)

	// Dependency index out of range.
	bad, err := model.NewMarginal[float64](sets, []int{5}, nil, []int{2}, nil)
	require.NoError(t, err)
	_, err = model.NewFactored([]*model.Marginal[float64]{bad}, []int{2}, []int{1})
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch)

	// A well-formed single-variable model classifies as Factored-IMDP.
	f, err := model.NewFactored([]*model.Marginal[float64]{mg}, []int{2}, []int{1})
	require.NoError(t, err)
	assert.Equal(t, model.KindFactoredIMDP, f.Kind())
	assert.Equal(t, 2, f.NumStates())
	assert.Equal(t, 1, f.NumActions())
}

// TestFactored_KindClassification: overlapping dependencies demote the model
// to the relaxed class.
func TestFactored_KindClassification(t *testing.T) {
	sets := func(cols int) *interval.Matrix[float64] {
		lower := make([]float64, 2*cols)
		upper := make([]float64, 2*cols)
		for j := 0; j < cols; j++ {
			lower[2*j], upper[2*j] = 0.2, 0.8
			lower[2*j+1], upper[2*j+1] = 0.1, 0.7
		}

		return denseMatrix(t, 2, cols, lower, upper)
	}

	shared0, err := model.NewMarginal[float64](sets(2), []int{0}, nil, []int{2}, nil)
	require.NoError(t, err)
	shared1, err := model.NewMarginal[float64](sets(2), []int{0}, nil, []int{2}, nil)
	require.NoError(t, err)

	f, err := model.NewFactored([]*model.Marginal[float64]{shared0, shared1}, []int{2, 2}, []int{1})
	require.NoError(t, err)
	assert.Equal(t, model.KindFactoredRMDP, f.Kind(), "both marginals read variable 0")
}

// TestFactored_LinearState round-trips tuples and rejects bad coordinates.
func TestFactored_LinearState(t *testing.T) {
	sets := denseMatrix(t, 3, 3, []float64{
		0.1, 0.1, 0.4,
		0.2, 0.1, 0.3,
		0.0, 0.2, 0.5,
	}, []float64{
		0.3, 0.4, 0.8,
		0.5, 0.3, 0.9,
		0.4, 0.5, 1.0,
	})
	marginals := make([]*model.Marginal[float64], 2)
	for i := range marginals {
		mg, err := model.NewMarginal[float64](sets, []int{i}, nil, []int{3}, nil)
		require.NoError(t, err)
		marginals[i] = mg
	}
	f, err := model.NewFactored(marginals, []int{3, 3}, []int{1})
	require.NoError(t, err)

	idx, err := f.LinearState([]int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 7, idx, "row-major linearization")

	buf := make([]int, 2)
	f.StateTuple(idx, buf)
	assert.Equal(t, []int{2, 1}, buf)

	_, err = f.LinearState([]int{2})
	assert.ErrorIs(t, err, imdp.ErrInvalidState, "wrong dimensionality")
	_, err = f.LinearState([]int{3, 0})
	assert.ErrorIs(t, err, imdp.ErrInvalidState, "coordinate out of range")
}

// TestMaterialize_TwoVariables checks the Kronecker hull entries and offsets
// on the smallest nontrivial model.
func TestMaterialize_TwoVariables(t *testing.T) {
	// Marginal 0: one source slice for each of the 2 values of variable 0.
	m0sets := denseMatrix(t, 2, 2,
		[]float64{0.3, 0.2, 0.5, 0.1},
		[]float64{0.7, 0.6, 0.9, 0.5})
	m0, err := model.NewMarginal[float64](m0sets, []int{0}, nil, []int{2}, nil)
	require.NoError(t, err)
	// Marginal 1: deterministic flip of variable 1.
	m1sets := denseMatrix(t, 2, 2,
		[]float64{0, 1, 1, 0},
		[]float64{0, 1, 1, 0})
	m1, err := model.NewMarginal[float64](m1sets, []int{1}, nil, []int{2}, nil)
	require.NoError(t, err)

	f, err := model.NewFactored([]*model.Marginal[float64]{m0, m1}, []int{2, 2}, []int{1})
	require.NoError(t, err)

	mdp, err := f.Materialize()
	require.NoError(t, err)

	assert.Equal(t, 4, mdp.NumStates())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, mdp.StatePtr(), "single action per joint state")

	// Source (0,0): variable 1 flips to 1, so mass sits on targets (·,1).
	set := mdp.Transitions().Set(0)
	assert.InDelta(t, 0.0, float64(set.Lower(0)), 1e-12) // (0,0)
	assert.InDelta(t, 0.3, float64(set.Lower(1)), 1e-12) // (0,1) = 0.3·1
	assert.InDelta(t, 0.0, float64(set.Lower(2)), 1e-12) // (1,0)
	assert.InDelta(t, 0.2, float64(set.Lower(3)), 1e-12) // (1,1)
	assert.InDelta(t, 0.7, float64(set.Upper(1)), 1e-12)
	assert.InDelta(t, 0.5, float64(set.Budget()), 1e-12, "hull budget is 1 − Σ joint lower")
}
