package solver

import (
	"fmt"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/model"
	"github.com/katalvlaran/imdp/product"
)

// Property is the closed taxonomy of temporal objectives. Implementations
// are the twelve exported structs below; the interface is sealed by the
// unexported methods, matching the fixed dispatch of the driver.
//
// Target, avoid and reward indices address states linearly, in row-major
// tuple order for factored models. Flat-state properties are rejected on
// product processes; DFA properties take automaton states instead and lift
// them to the product indices s·|Q|+q themselves.
type Property[R imdp.Real] interface {
	// validate checks the property against the model at construction time.
	validate(sys model.System[R]) error
	// plan compiles the property into driver instructions; the property is
	// assumed validated.
	plan(sys model.System[R]) viPlan[R]
}

// viPlan is the compiled form a property hands to the driver.
type viPlan[R imdp.Real] struct {
	init     func(v []R) // write V⁰
	force    func(v []R) // terminal forcing after each backup; may be nil
	reward   []R         // per-state immediate reward; nil for probability properties
	discount R
	horizon  int // 0 = run to convergence
	tol      R
	clamp    bool // clamp values into [0,1]
}

// FiniteTimeReachability asks for the probability of reaching Targets within
// Horizon steps; targets are absorbing.
type FiniteTimeReachability[R imdp.Real] struct {
	Targets []int
	Horizon int
}

func (p FiniteTimeReachability[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkHorizon(p.Horizon); err != nil {
		return err
	}

	return checkStates(p.Targets, sys.NumStates())
}

func (p FiniteTimeReachability[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:    indicator[R](p.Targets),
		force:   pin[R](p.Targets, 1),
		horizon: p.Horizon,
		clamp:   true,
	}
}

// InfiniteTimeReachability iterates reachability to convergence below
// Tolerance in max norm.
type InfiniteTimeReachability[R imdp.Real] struct {
	Targets   []int
	Tolerance R
}

func (p InfiniteTimeReachability[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkTolerance(p.Tolerance); err != nil {
		return err
	}

	return checkStates(p.Targets, sys.NumStates())
}

func (p InfiniteTimeReachability[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:  indicator[R](p.Targets),
		force: pin[R](p.Targets, 1),
		tol:   p.Tolerance,
		clamp: true,
	}
}

// ExactTimeReachability asks for the probability of being in Targets exactly
// at step Horizon: targets are not absorbing.
type ExactTimeReachability[R imdp.Real] struct {
	Targets []int
	Horizon int
}

func (p ExactTimeReachability[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkHorizon(p.Horizon); err != nil {
		return err
	}

	return checkStates(p.Targets, sys.NumStates())
}

func (p ExactTimeReachability[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:    indicator[R](p.Targets),
		horizon: p.Horizon,
		clamp:   true,
	}
}

// FiniteTimeReachAvoid asks for the probability of reaching Targets within
// Horizon steps while never entering Avoid. The two sets must be disjoint.
type FiniteTimeReachAvoid[R imdp.Real] struct {
	Targets []int
	Avoid   []int
	Horizon int
}

func (p FiniteTimeReachAvoid[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkHorizon(p.Horizon); err != nil {
		return err
	}
	if err := checkStates(p.Targets, sys.NumStates()); err != nil {
		return err
	}
	if err := checkStates(p.Avoid, sys.NumStates()); err != nil {
		return err
	}

	return checkDisjoint(p.Targets, p.Avoid)
}

func (p FiniteTimeReachAvoid[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:    indicator[R](p.Targets),
		force:   pinTwo[R](p.Targets, 1, p.Avoid, 0),
		horizon: p.Horizon,
		clamp:   true,
	}
}

// InfiniteTimeReachAvoid iterates reach-avoid to convergence.
type InfiniteTimeReachAvoid[R imdp.Real] struct {
	Targets   []int
	Avoid     []int
	Tolerance R
}

func (p InfiniteTimeReachAvoid[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkTolerance(p.Tolerance); err != nil {
		return err
	}
	if err := checkStates(p.Targets, sys.NumStates()); err != nil {
		return err
	}
	if err := checkStates(p.Avoid, sys.NumStates()); err != nil {
		return err
	}

	return checkDisjoint(p.Targets, p.Avoid)
}

func (p InfiniteTimeReachAvoid[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:  indicator[R](p.Targets),
		force: pinTwo[R](p.Targets, 1, p.Avoid, 0),
		tol:   p.Tolerance,
		clamp: true,
	}
}

// FiniteTimeSafety asks for the probability of avoiding Avoid for Horizon
// steps: V starts at 1 outside the avoid set and only decays.
type FiniteTimeSafety[R imdp.Real] struct {
	Avoid   []int
	Horizon int
}

func (p FiniteTimeSafety[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkHorizon(p.Horizon); err != nil {
		return err
	}

	return checkStates(p.Avoid, sys.NumStates())
}

func (p FiniteTimeSafety[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:    complementIndicator[R](p.Avoid),
		force:   pin[R](p.Avoid, 0),
		horizon: p.Horizon,
		clamp:   true,
	}
}

// InfiniteTimeSafety iterates safety to convergence.
type InfiniteTimeSafety[R imdp.Real] struct {
	Avoid     []int
	Tolerance R
}

func (p InfiniteTimeSafety[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkTolerance(p.Tolerance); err != nil {
		return err
	}

	return checkStates(p.Avoid, sys.NumStates())
}

func (p InfiniteTimeSafety[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:  complementIndicator[R](p.Avoid),
		force: pin[R](p.Avoid, 0),
		tol:   p.Tolerance,
		clamp: true,
	}
}

// FiniteTimeReward accumulates Rewards for Horizon steps under Discount:
// V ← r + γ·(T V). Finite horizons allow any positive discount.
type FiniteTimeReward[R imdp.Real] struct {
	Rewards  []R
	Discount R
	Horizon  int
}

func (p FiniteTimeReward[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkHorizon(p.Horizon); err != nil {
		return err
	}
	if p.Discount <= 0 {
		return fmt.Errorf("solver: discount %v must be positive: %w", p.Discount, imdp.ErrInvalidSpecification)
	}

	return checkRewards(p.Rewards, sys.NumStates())
}

func (p FiniteTimeReward[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:     zeros[R](),
		reward:   p.Rewards,
		discount: p.Discount,
		horizon:  p.Horizon,
	}
}

// InfiniteTimeReward iterates discounted reward to convergence; the discount
// must lie strictly inside (0, 1) for the fixed point to exist.
type InfiniteTimeReward[R imdp.Real] struct {
	Rewards   []R
	Discount  R
	Tolerance R
}

func (p InfiniteTimeReward[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkTolerance(p.Tolerance); err != nil {
		return err
	}
	if p.Discount <= 0 || p.Discount >= 1 {
		return fmt.Errorf("solver: infinite-horizon discount %v outside (0,1): %w", p.Discount, imdp.ErrInvalidSpecification)
	}

	return checkRewards(p.Rewards, sys.NumStates())
}

func (p InfiniteTimeReward[R]) plan(model.System[R]) viPlan[R] {
	return viPlan[R]{
		init:     zeros[R](),
		reward:   p.Rewards,
		discount: p.Discount,
		tol:      p.Tolerance,
	}
}

// ExpectedExitTime computes the expected number of steps spent before
// entering Avoid: unit reward outside the set, none inside, no discounting.
type ExpectedExitTime[R imdp.Real] struct {
	Avoid     []int
	Tolerance R
}

func (p ExpectedExitTime[R]) validate(sys model.System[R]) error {
	if err := rejectProduct[R](sys); err != nil {
		return err
	}
	if err := checkTolerance(p.Tolerance); err != nil {
		return err
	}

	return checkStates(p.Avoid, sys.NumStates())
}

func (p ExpectedExitTime[R]) plan(sys model.System[R]) viPlan[R] {
	reward := make([]R, sys.NumStates())
	for i := range reward {
		reward[i] = 1
	}
	for _, s := range p.Avoid {
		reward[s] = 0
	}

	return viPlan[R]{
		init:     zeros[R](),
		reward:   reward,
		discount: 1,
		force:    pin[R](p.Avoid, 0),
		tol:      p.Tolerance,
	}
}

// FiniteTimeDFAReachability asks, on a product process, for the probability
// of driving the automaton into Accepting within Horizon steps.
type FiniteTimeDFAReachability[R imdp.Real] struct {
	Accepting []int
	Horizon   int
}

func (p FiniteTimeDFAReachability[R]) validate(sys model.System[R]) error {
	proc, err := requireProduct[R](sys)
	if err != nil {
		return err
	}
	if err := checkHorizon(p.Horizon); err != nil {
		return err
	}

	return checkStates(p.Accepting, proc.Automaton().NumStates())
}

func (p FiniteTimeDFAReachability[R]) plan(sys model.System[R]) viPlan[R] {
	targets := liftAccepting[R](sys.(*product.Process[R]), p.Accepting)

	return viPlan[R]{
		init:    indicator[R](targets),
		force:   pin[R](targets, 1),
		horizon: p.Horizon,
		clamp:   true,
	}
}

// InfiniteTimeDFAReachability iterates automaton reachability to convergence.
type InfiniteTimeDFAReachability[R imdp.Real] struct {
	Accepting []int
	Tolerance R
}

func (p InfiniteTimeDFAReachability[R]) validate(sys model.System[R]) error {
	proc, err := requireProduct[R](sys)
	if err != nil {
		return err
	}
	if err := checkTolerance(p.Tolerance); err != nil {
		return err
	}

	return checkStates(p.Accepting, proc.Automaton().NumStates())
}

func (p InfiniteTimeDFAReachability[R]) plan(sys model.System[R]) viPlan[R] {
	targets := liftAccepting[R](sys.(*product.Process[R]), p.Accepting)

	return viPlan[R]{
		init:  indicator[R](targets),
		force: pin[R](targets, 1),
		tol:   p.Tolerance,
		clamp: true,
	}
}
