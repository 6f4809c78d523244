package bellman

import (
	"errors"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/ordering"
)

// Direction selects an optimization sense. The backup uses two independent
// directions: one resolving the interval ambiguity (the adversary), one
// reducing over actions.
type Direction int

const (
	// Minimize picks the worst case for the adversary axis, or the minimal
	// action value for the action axis.
	Minimize Direction = iota
	// Maximize is the dual.
	Maximize
)

// ErrInfeasible is returned when the budget walk exhausts a column before the
// budget itself — possible only on ambiguity sets that bypassed validation.
var ErrInfeasible = errors.New("bellman: infeasible ambiguity set")

// Config fixes the two directions and the parallel width of a batched backup.
type Config struct {
	// Adversary resolves the interval uncertainty: Minimize is pessimistic
	// (worst case), Maximize optimistic (best case).
	Adversary Direction
	// Actions reduces over each state's action block.
	Actions Direction
	// Workers bounds the parallel region width; values ≤ 1 run inline.
	Workers int
}

// SortDirection maps the adversary sense onto the ordering sort: maximizing
// pours budget into the most valuable targets first.
func (c Config) SortDirection() ordering.Direction {
	if c.Adversary == Maximize {
		return ordering.Descending
	}

	return ordering.Ascending
}

// better reports whether candidate improves on incumbent under dir.
func better[R imdp.Real](candidate, incumbent R, dir Direction) bool {
	if dir == Maximize {
		return candidate > incumbent
	}

	return candidate < incumbent
}
