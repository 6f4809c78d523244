package ordering_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/imdp/interval"
	"github.com/katalvlaran/imdp/ordering"
)

// benchmarkSort measures the per-backup global argsort at size n.
func benchmarkSort(b *testing.B, n int) {
	rng := rand.New(rand.NewSource(1))
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64()
	}
	ord := ordering.NewDense[float64](n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ord.SortStates(v, ordering.Ascending)
	}
}

func BenchmarkSortStates_1k(b *testing.B)  { benchmarkSort(b, 1_000) }
func BenchmarkSortStates_64k(b *testing.B) { benchmarkSort(b, 64_000) }

// BenchmarkPopulateSubsets measures the linear redistribution pass on a
// banded sparse kernel (three stored entries per column).
func BenchmarkPopulateSubsets(b *testing.B) {
	const n = 10_000
	rng := rand.New(rand.NewSource(1))

	colptr := make([]int, n+1)
	var rowidx []int
	var lower, upper []float64
	for j := 0; j < n; j++ {
		for d := -1; d <= 1; d++ {
			i := j + d
			if i < 0 || i >= n {
				continue
			}
			rowidx = append(rowidx, i)
			lower = append(lower, 0.1)
			upper = append(upper, 1)
		}
		colptr[j+1] = len(rowidx)
	}
	sp, err := interval.NewCSCMatrix(n, colptr, rowidx, lower, upper)
	if err != nil {
		b.Fatalf("csc construction failed: %v", err)
	}

	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64()
	}
	ord := ordering.NewSparse(sp)
	ord.SortStates(v, ordering.Ascending)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ord.PopulateSubsets()
	}
}
