// Package imdp verifies and synthesizes strategies for Interval Markov
// Decision Processes and their factored generalizations.
//
// 🚀 What is imdp?
//
//	A pure-Go engine for robust probabilistic model checking:
//
//	  • Interval ambiguity sets: transition probabilities known only up to
//	    an interval [p_lo, p_hi] per successor state
//	  • Exact robust Bellman backups via order-based O-maximization
//	  • Value iteration over reachability, reach-avoid, safety and
//	    discounted-reward properties, finite or infinite horizon
//	  • Factored (orthogonal) models reduced axis by axis without ever
//	    materializing the joint kernel
//	  • Synchronous products with deterministic finite automata
//	  • Optimal or adversarial strategy extraction per state and step
//
// ✨ Why choose imdp?
//
//   - Exact             — interval Bellman backups are closed-form, no LP solver
//   - Deterministic     — backups write disjoint slices; iterates are bit-stable
//   - Allocation-free   — all workspaces pre-sized at solve entry
//   - Pure Go           — no cgo, portable everywhere Go runs
//
// Everything is organized under six subpackages:
//
//	interval/ — validated interval ambiguity sets, dense and compressed-sparse
//	ordering/ — amortized value-vector orderings shared across Bellman sources
//	bellman/  — the O-maximization primitive, batched and factored backups
//	model/    — IMDP, Markov-chain and factored model construction
//	product/  — synchronous products of a model with a DFA under a labelling
//	solver/   — properties, problems, the value-iteration driver and Solve
//
// The root package carries only what the subpackages share: the Real numeric
// parameter and the sentinel error kinds.
//
//	go get github.com/katalvlaran/imdp
package imdp
