// SPDX-License-Identifier: MIT
package interval_test

import (
	"fmt"
	"log"

	"github.com/katalvlaran/imdp/interval"
)

// ExampleNewMatrix shows the per-column budget: the slack mass the adversary
// may pour on top of the lower bounds.
func ExampleNewMatrix() {
	m, err := interval.NewMatrix(3, 1,
		[]float64{0, 0.1, 0.2},
		[]float64{0.5, 0.6, 0.7})
	if err != nil {
		log.Fatal(err)
	}

	set := m.Set(0)
	fmt.Printf("budget=%.2f upper(2)=%.2f\n", set.Budget(), set.Upper(2))
	// Output: budget=0.70 upper(2)=0.70
}
