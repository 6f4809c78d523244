// SPDX-License-Identifier: MIT
package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/interval"
)

// Materialize builds the explicit joint kernel of a factored model as a flat
// dense collection plus its stateptr: for every (source, action) the joint
// lower and upper columns are the Kronecker products of the marginals'
// columns (a delta column for implicit sinks), target indices in row-major
// tuple order.
//
// The result is the interval hull of the factored set — a valid ambiguity
// collection containing every product distribution. It is exponential in the
// number of variables and exists for cross-checks and small models, not for
// the solve path.
func (f *Factored[R]) Materialize() (*IMDP[R], error) {
	n := f.NumStates()
	numA := f.NumActions()
	m := n * numA

	lower := make([]R, n*m)
	gap := make([]R, n*m)
	budget := make([]R, m)

	state := make([]int, f.NumVars())
	action := make([]int, len(f.actionVals))

	for s := 0; s < n; s++ {
		// 1) Decode the joint source; its tuple selects every marginal's
		//    column (or marks it sinked).
		f.StateTuple(s, state)
		for a := 0; a < numA; a++ {
			f.ActionTuple(a, action)

			// 2) Accumulate the joint bounds marginal by marginal:
			//    lower ⊗= lᵢ, upper ⊗= uᵢ, a point mass for sinks.
			lo := kronUnit()
			hi := kronUnit()
			for i, mg := range f.marginals {
				d := f.stateVals[i]
				var colLo, colHi *mat.Dense
				if mg.Sink(state) {
					delta := deltaColumn(d, state[i])
					colLo, colHi = delta, delta
				} else {
					set := mg.sets.Set(mg.ColumnOf(state, action))
					colLo, colHi = boundColumns(set, d)
				}

				lo = kron(lo, colLo)
				hi = kron(hi, colHi)
			}

			// 3) Write the hull column back in the engine's numeric type,
			//    deriving gap and budget on the way.
			j := s*numA + a
			base := j * n
			var sumLo R
			for i := 0; i < n; i++ {
				l := R(lo.At(i, 0))
				lower[base+i] = l
				gap[base+i] = R(hi.At(i, 0)) - l
				sumLo += l
			}
			budget[j] = 1 - sumLo
		}
	}

	// 4) Uniform action blocks: stateptr is a stride.
	stateptr := make([]int, n+1)
	for s := 0; s <= n; s++ {
		stateptr[s] = s * numA
	}

	// The hull inherits feasibility from the marginals (products of column
	// sums bracket 1), so the unchecked path avoids spurious round-off
	// rejections near the Σ = 1 boundaries.
	return NewIMDP[R](interval.NewMatrixUnchecked(n, m, lower, gap, budget), stateptr)
}

// kronUnit returns the 1×1 Kronecker seed.
func kronUnit() *mat.Dense { return mat.NewDense(1, 1, []float64{1}) }

// kron returns acc ⊗ col for column vectors.
func kron(acc, col *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Kronecker(acc, col)

	return &out
}

// deltaColumn is the point-mass column at index t.
func deltaColumn(d, t int) *mat.Dense {
	data := make([]float64, d)
	data[t] = 1

	return mat.NewDense(d, 1, data)
}

// boundColumns copies one ambiguity column's lower and upper bounds into
// dense float64 column vectors.
func boundColumns[R imdp.Real](set interval.Set[R], d int) (lo, hi *mat.Dense) {
	lower := make([]float64, d)
	upper := make([]float64, d)
	for k := 0; k < set.Len(); k++ {
		t := set.Target(k)
		lower[t] = float64(set.Lower(k))
		upper[t] = float64(set.Upper(k))
	}

	return mat.NewDense(d, 1, lower), mat.NewDense(d, 1, upper)
}
