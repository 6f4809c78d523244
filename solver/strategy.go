package solver

import (
	"fmt"

	"github.com/katalvlaran/imdp"
)

// Strategy is an action choice per state — stationary (one row) or
// time-varying (one row per calendar step, index 0 first). Entries are
// action indices relative to each state's action block.
type Strategy struct {
	actions    [][]int
	stationary bool
}

// NewStationaryStrategy wraps one action row.
func NewStationaryStrategy(actions []int) *Strategy {
	return &Strategy{actions: [][]int{actions}, stationary: true}
}

// NewTimeVaryingStrategy wraps per-step action rows in calendar order.
func NewTimeVaryingStrategy(actions [][]int) *Strategy {
	return &Strategy{actions: actions, stationary: false}
}

// IsStationary reports whether the strategy ignores the time step.
func (s *Strategy) IsStationary() bool { return s.stationary }

// Steps returns the number of stored rows: 1 for stationary strategies.
func (s *Strategy) Steps() int { return len(s.actions) }

// Row returns the action row for calendar step t (any t for stationary).
func (s *Strategy) Row(t int) []int {
	if s.stationary {
		return s.actions[0]
	}

	return s.actions[t]
}

// Action returns the chosen action at state s and calendar step t.
func (s *Strategy) Action(t, state int) int { return s.Row(t)[state] }

// checkAgainst validates the strategy's shape for a model with numStates
// states over the given horizon (0 = infinite, requiring stationarity).
func (s *Strategy) checkAgainst(numStates, horizon int) error {
	if s == nil || len(s.actions) == 0 {
		return fmt.Errorf("solver: empty strategy: %w", imdp.ErrInvalidSpecification)
	}
	if !s.stationary && len(s.actions) != horizon {
		return fmt.Errorf("solver: time-varying strategy has %d steps, horizon is %d: %w",
			len(s.actions), horizon, imdp.ErrInvalidSpecification)
	}
	for t, row := range s.actions {
		if len(row) != numStates {
			return fmt.Errorf("solver: strategy row %d covers %d states, want %d: %w",
				t, len(row), numStates, imdp.ErrDimensionMismatch)
		}
	}

	return nil
}
