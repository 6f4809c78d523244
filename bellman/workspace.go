package bellman

import (
	"github.com/katalvlaran/imdp"
	"github.com/katalvlaran/imdp/model"
)

// Policy selects how a factored backup spends its parallelism.
type Policy int

const (
	// SingleThreaded runs everything inline with one scratch set.
	SingleThreaded Policy = iota
	// ParallelFibers splits the fiber loop of every axis reduction with at
	// least parallelFiberCutoff fibers across workers; sources are still
	// visited sequentially.
	ParallelFibers
	// ParallelSources splits source states across workers, one scratch set
	// each. The usual choice: source counts dwarf fiber counts.
	ParallelSources
)

// parallelFiberCutoff is the fiber count below which ParallelFibers falls
// back to the inline loop; spawning costs more than the work saved.
const parallelFiberCutoff = 1024

// Workspace carries the pre-sized scratch of a factored backup: the two
// ping-pong reduction buffers, a fiber permutation, and decoded state/action
// tuples, one set per worker. Nothing inside a backup allocates.
type Workspace[R imdp.Real] struct {
	policy  Policy
	workers int
	scratch []*scratch[R]
}

type scratch[R imdp.Real] struct {
	bufA, bufB []R
	perm       []int
	state      []int
	action     []int
}

// NewWorkspace sizes a workspace for f. workers ≤ 1 collapses any policy to
// a single scratch set.
func NewWorkspace[R imdp.Real](f *model.Factored[R], policy Policy, workers int) *Workspace[R] {
	if workers < 1 || policy == SingleThreaded {
		workers = 1
	}

	dims := f.StateValues()
	bufLen := 1
	maxDim := 1
	for _, d := range dims {
		bufLen *= d
		if d > maxDim {
			maxDim = d
		}
	}
	// Largest intermediate tensor: the joint size divided by the last axis.
	bufLen /= dims[len(dims)-1]
	if bufLen < 1 {
		bufLen = 1
	}

	ws := &Workspace[R]{policy: policy, workers: workers, scratch: make([]*scratch[R], workers)}
	for w := range ws.scratch {
		ws.scratch[w] = &scratch[R]{
			bufA:   make([]R, bufLen),
			bufB:   make([]R, bufLen),
			perm:   make([]int, maxDim),
			state:  make([]int, f.NumVars()),
			action: make([]int, len(f.ActionValues())),
		}
	}

	return ws
}

// Policy returns the workspace's parallelism policy.
func (ws *Workspace[R]) Policy() Policy { return ws.policy }

// argsortFiber fills perm with 0..len(fiber)-1 ordered by fiber values in
// the given direction. Insertion sort: fibers are variable-cardinality
// sized, small, and this keeps the inner loop allocation-free.
func argsortFiber[R imdp.Real](perm []int, fiber []R, dir Direction) {
	for i := range perm {
		perm[i] = i
	}
	for i := 1; i < len(perm); i++ {
		k := perm[i]
		j := i - 1
		if dir == Maximize {
			for j >= 0 && fiber[perm[j]] < fiber[k] {
				perm[j+1] = perm[j]
				j--
			}
		} else {
			for j >= 0 && fiber[perm[j]] > fiber[k] {
				perm[j+1] = perm[j]
				j--
			}
		}
		perm[j+1] = k
	}
}
