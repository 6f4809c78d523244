package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/imdp/interval"
	"github.com/katalvlaran/imdp/model"
	"github.com/katalvlaran/imdp/solver"
)

// TestVerify_ExpectedExitTimeGeometric: a fair coin decides each step
// between staying and exiting, so the expected exit time is 2.
func TestVerify_ExpectedExitTimeGeometric(t *testing.T) {
	m, err := interval.NewMatrix(2, 2,
		[]float64{0.5, 0.5, 0, 1},
		[]float64{0.5, 0.5, 0, 1})
	require.NoError(t, err)
	c, err := model.NewIMC[float64](m)
	require.NoError(t, err)

	res := verify(t, c, solver.Specification[float64]{
		Property: solver.ExpectedExitTime[float64]{Avoid: []int{1}, Tolerance: 1e-10},
	})

	assert.InDelta(t, 2.0, res.Values[0], 1e-6, "geometric(1/2) waiting time")
	assert.Equal(t, 0.0, res.Values[1])
}

// TestVerify_ExpectedExitTimeIntervalGap: with the stay-probability only
// bounded, pessimistic and optimistic exit times bracket the truth.
//
// Staying mass ∈ [0.25, 0.75] gives expected exit times between 4/3 and 4.
func TestVerify_ExpectedExitTimeIntervalGap(t *testing.T) {
	m, err := interval.NewMatrix(2, 2,
		[]float64{0.25, 0.25, 0, 1},
		[]float64{0.75, 0.75, 0, 1})
	require.NoError(t, err)
	c, err := model.NewIMC[float64](m)
	require.NoError(t, err)

	pess := verify(t, c, solver.Specification[float64]{
		Property:     solver.ExpectedExitTime[float64]{Avoid: []int{1}, Tolerance: 1e-10},
		Satisfaction: solver.Pessimistic,
	})
	opt := verify(t, c, solver.Specification[float64]{
		Property:     solver.ExpectedExitTime[float64]{Avoid: []int{1}, Tolerance: 1e-10},
		Satisfaction: solver.Optimistic,
	})

	assert.InDelta(t, 4.0/3, pess.Values[0], 1e-6, "worst case exits fast (time is a reward)")
	assert.InDelta(t, 4.0, opt.Values[0], 1e-6, "best case lingers")
	assert.LessOrEqual(t, pess.Values[0], opt.Values[0])
}
