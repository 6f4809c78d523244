package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/imdp/interval"
	"github.com/katalvlaran/imdp/model"
	"github.com/katalvlaran/imdp/solver"
)

// twoActionMDP: state 0 chooses between the chain's first two columns,
// state 1 has one action, state 2 absorbs.
func twoActionMDP(t *testing.T) *model.IMDP[float64] {
	t.Helper()
	m, err := interval.NewMatrix(3, 4,
		[]float64{
			0, 0.1, 0.2, // state 0, action 0
			0.5, 0.3, 0.1, // state 0, action 1
			0.5, 0.3, 0.1, // state 1
			0, 0, 1, // state 2
		},
		[]float64{
			0.5, 0.6, 0.7,
			0.7, 0.5, 0.3,
			0.7, 0.5, 0.3,
			0, 0, 1,
		})
	require.NoError(t, err)
	mdp, err := model.NewIMDP[float64](m, []int{0, 2, 3, 4})
	require.NoError(t, err)

	return mdp
}

// TestSynthesize_FiniteHorizonRoundTrip: verifying the synthesized strategy
// reproduces the synthesized values (strategies are realizable).
func TestSynthesize_FiniteHorizonRoundTrip(t *testing.T) {
	mdp := twoActionMDP(t)
	spec := solver.Specification[float64]{
		Property:     solver.FiniteTimeReachability[float64]{Targets: []int{2}, Horizon: 5},
		Satisfaction: solver.Pessimistic,
		Strategy:     solver.Maximize,
	}

	strat, res, err := solver.Synthesize(context.Background(), mdp, spec, solver.DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, strat)
	assert.False(t, strat.IsStationary(), "finite horizons give per-step strategies")
	assert.Equal(t, 5, strat.Steps())

	prob, err := solver.NewVerificationProblemUnderStrategy(mdp, spec, strat, solver.DefaultOptions())
	require.NoError(t, err)
	check, err := prob.Solve(context.Background())
	require.NoError(t, err)

	require.Len(t, check.Values, 3)
	for s := range res.Values {
		assert.InDelta(t, res.Values[s], check.Values[s], 1e-9, "state %d", s)
	}
}

// TestSynthesize_InfiniteHorizonRoundTrip: stationary strategies verify to
// the same fixed point.
func TestSynthesize_InfiniteHorizonRoundTrip(t *testing.T) {
	mdp := twoActionMDP(t)
	spec := solver.Specification[float64]{
		Property: solver.InfiniteTimeReachability[float64]{Targets: []int{2}, Tolerance: 1e-10},
	}

	strat, res, err := solver.Synthesize(context.Background(), mdp, spec, solver.DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, strat)
	assert.True(t, strat.IsStationary(), "infinite horizons give stationary strategies")

	prob, err := solver.NewVerificationProblemUnderStrategy(mdp, spec, strat, solver.DefaultOptions())
	require.NoError(t, err)
	check, err := prob.Solve(context.Background())
	require.NoError(t, err)

	for s := range res.Values {
		assert.InDelta(t, res.Values[s], check.Values[s], 1e-6, "state %d", s)
	}
}

// TestSynthesize_PicksDominantAction: action 1 of state 0 guarantees at
// least half the mass onto state 1's well-connected column, dominating under
// the worst case; the maximizer must select it over the near-vacuous
// action 0.
func TestSynthesize_PicksDominantAction(t *testing.T) {
	// State 0: action 0 can leak everything back to state 0, action 1
	// guarantees the target with probability at least 0.6.
	m, err := interval.NewMatrix(2, 3,
		[]float64{
			0.5, 0, // state 0, action 0: mostly stay
			0.2, 0.6, // state 0, action 1: mostly hit
			0, 1, // state 1 absorbs
		},
		[]float64{
			1.0, 0.5,
			0.4, 0.8,
			0, 1,
		})
	require.NoError(t, err)
	mdp, err := model.NewIMDP[float64](m, []int{0, 2, 3})
	require.NoError(t, err)

	strat, res, err := solver.Synthesize(context.Background(), mdp, solver.Specification[float64]{
		Property: solver.FiniteTimeReachability[float64]{Targets: []int{1}, Horizon: 3},
	}, solver.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, strat.Action(0, 0), "the guaranteed action wins under the worst case")
	assert.GreaterOrEqual(t, res.Values[0], 0.6)

	// The antagonist picks the leaky action instead.
	advStrat, advRes, err := solver.Synthesize(context.Background(), mdp, solver.Specification[float64]{
		Property: solver.FiniteTimeReachability[float64]{Targets: []int{1}, Horizon: 3},
		Strategy: solver.Minimize,
	}, solver.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, advStrat.Action(0, 0))
	assert.LessOrEqual(t, advRes.Values[0], res.Values[0]+1e-12)
}
