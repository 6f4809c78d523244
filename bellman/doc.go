// Package bellman implements the robust Bellman operators: the closed-form
// O-maximization primitive over one interval ambiguity set, its batched
// per-state application with action reduction and strategy capture, and the
// axis-wise McCormick reduction for factored kernels.
//
// 🚀 O-maximization
//
// For one ambiguity set with lower bounds l, gaps g and budget B = 1 − Σl,
// and a value vector V, the extremal expectation
//
//	opt { ⟨p, V⟩ : l ≤ p ≤ l+g, Σp = 1 }
//
// is attained at a vertex characterized by a total order on the coordinates.
// Walking the coordinates sorted by V (descending to maximize, ascending to
// minimize), greedily pouring the budget into each gap until it runs out,
// realizes that vertex exactly. O(n) per set once the ordering is shared.
//
// 🚀 Factored reduction
//
// When the kernel factors into marginals over N state variables, the joint
// backup reduces the value tensor one axis at a time, last axis first, by
// per-fiber 1-D O-maximization with the marginal's column for the source.
// Exact when the marginals' dependencies partition the state variables; a
// sound bound (upper for Maximize, lower for Minimize) otherwise. Implicit
// sink sources skip the O-max and pass their current value through.
//
// Complexity:
//
//	– Backup:         O(Σⱼ nnzⱼ) over all columns after one shared sort
//	– FactoredBackup: O(|S|·|A|·Σᵢ Πₖ≤ᵢ dₖ) with dᵢ the variable cardinalities
//
// Concurrency: batched operations are data-parallel across sources. Workers
// share read-only access to the value vector, the ordering and the ambiguity
// arrays, and write disjoint slices of the output and strategy buffers, so
// every backup is deterministic up to nothing at all — max and min are
// associative and per-source sums are sequential.
//
// All workspaces are pre-sized: the hot loops allocate nothing.
package bellman
