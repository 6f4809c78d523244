package solver_test

import (
	"context"
	"fmt"
	"log"

	"github.com/katalvlaran/imdp/interval"
	"github.com/katalvlaran/imdp/model"
	"github.com/katalvlaran/imdp/solver"
)

// ExampleVerify checks a three-step reachability objective on a two-state
// chain that funnels deterministically into its goal state.
func ExampleVerify() {
	trans, err := interval.NewMatrix(2, 2,
		[]float64{0, 1, 0, 1}, // state 0 → state 1 → state 1
		[]float64{0, 1, 0, 1})
	if err != nil {
		log.Fatal(err)
	}
	chain, err := model.NewIMC[float64](trans)
	if err != nil {
		log.Fatal(err)
	}

	res, err := solver.Verify(context.Background(), chain, solver.Specification[float64]{
		Property: solver.FiniteTimeReachability[float64]{Targets: []int{1}, Horizon: 3},
	}, solver.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("reach=%.4f iterations=%d\n", res.Values[0], res.Iterations)
	// Output: reach=1.0000 iterations=3
}
