// SPDX-License-Identifier: MIT
package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
)

// scenarioLower/scenarioUpper are the 3-state interval chain used across the
// suite: column j is the successor distribution of state j.
var (
	scenarioLower = []float64{
		0, 1.0 / 10, 1.0 / 5, // state 0
		1.0 / 2, 3.0 / 10, 1.0 / 10, // state 1
		0, 0, 1, // state 2 (absorbing)
	}
	scenarioUpper = []float64{
		1.0 / 2, 3.0 / 5, 7.0 / 10,
		7.0 / 10, 1.0 / 2, 3.0 / 10,
		0, 0, 1,
	}
)

// TestNewMatrix_Valid verifies shapes, budgets and accessors on the scenario
// chain.
func TestNewMatrix_Valid(t *testing.T) {
	m, err := interval.NewMatrix(3, 3, scenarioLower, scenarioUpper)
	require.NoError(t, err)

	assert.Equal(t, 3, m.NumTargets())
	assert.Equal(t, 3, m.NumColumns())

	set := m.Set(0)
	assert.Equal(t, 3, set.Len())
	assert.InDelta(t, 0.7, float64(set.Budget()), 1e-12, "budget is 1 − Σ lower")
	assert.Equal(t, 0.0, set.Lower(0))
	assert.InDelta(t, 0.5, float64(set.Upper(0)), 1e-12)
	assert.InDelta(t, 0.5, float64(set.Gap(1)), 1e-12)

	absorbing := m.Set(2)
	assert.Equal(t, 0.0, float64(absorbing.Budget()), "deterministic column has no slack")
}

// TestNewMatrix_ShapeErrors verifies dimension validation.
func TestNewMatrix_ShapeErrors(t *testing.T) {
	_, err := interval.NewMatrix[float64](0, 3, nil, nil)
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch, "empty shape must be rejected")

	_, err = interval.NewMatrix(3, 3, scenarioLower[:8], scenarioUpper)
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch, "short lower array must be rejected")
}

// TestNewMatrix_BoundErrors verifies every per-entry invariant of the set.
func TestNewMatrix_BoundErrors(t *testing.T) {
	cases := []struct {
		name         string
		lower, upper []float64
	}{
		{"negative lower", []float64{-0.1, 0.5}, []float64{0.5, 0.6}},
		{"upper below lower", []float64{0.5, 0.2}, []float64{0.4, 0.6}},
		{"upper above one", []float64{0.2, 0.2}, []float64{1.1, 0.9}},
		{"lower sums above one", []float64{0.6, 0.6}, []float64{0.7, 0.7}},
		{"upper sums below one", []float64{0.1, 0.1}, []float64{0.4, 0.4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := interval.NewMatrix(2, 1, tc.lower, tc.upper)
			assert.ErrorIs(t, err, imdp.ErrInvalidAmbiguitySet)
		})
	}
}

// TestNewCSCMatrix_MatchesDense verifies the sparse layout exposes the same
// sets as its dense counterpart.
func TestNewCSCMatrix_MatchesDense(t *testing.T) {
	// Two columns over 4 targets, each with two stored entries.
	colptr := []int{0, 2, 4}
	rowidx := []int{0, 2, 1, 3}
	lower := []float64{0.2, 0.3, 0.0, 0.5}
	upper := []float64{0.7, 0.8, 0.5, 1.0}

	sp, err := interval.NewCSCMatrix(4, colptr, rowidx, lower, upper)
	require.NoError(t, err)

	assert.Equal(t, 4, sp.NumTargets())
	assert.Equal(t, 2, sp.NumColumns())
	assert.Equal(t, 4, sp.NNZ())

	set := sp.Set(0)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 0, set.Target(0))
	assert.Equal(t, 2, set.Target(1))
	assert.InDelta(t, 0.5, float64(set.Budget()), 1e-12)
	assert.False(t, set.Dense())
}

// TestNewCSCMatrix_Errors verifies the sparse-specific structure checks.
func TestNewCSCMatrix_Errors(t *testing.T) {
	_, err := interval.NewCSCMatrix(3, []int{0, 2}, []int{1, 0}, []float64{0.2, 0.2}, []float64{0.8, 0.8})
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch, "row indices must increase within a column")

	_, err = interval.NewCSCMatrix(3, []int{1, 2}, []int{0}, []float64{0.2}, []float64{1.0})
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch, "colptr must start at 0")

	_, err = interval.NewCSCMatrix(2, []int{0, 1}, []int{5}, []float64{0.2}, []float64{1.0})
	assert.ErrorIs(t, err, imdp.ErrDimensionMismatch, "row index out of range")
}
