// SPDX-License-Identifier: MIT
package model

import "github.com/katalvlaran/imdp"

// Kind classifies a process for Bellman-kernel dispatch. The set is closed:
// the solver matches over it exhaustively.
type Kind int

const (
	// KindIMDP is a flat interval MDP (or Markov chain).
	KindIMDP Kind = iota
	// KindRMDP is reserved for flat robust MDPs with non-interval box sets.
	KindRMDP
	// KindFactoredIMDP is a factored model whose marginals read pairwise
	// disjoint state variables; the axis-wise backup is exact.
	KindFactoredIMDP
	// KindFactoredRMDP is a factored model with overlapping dependencies;
	// the axis-wise backup is a sound McCormick relaxation.
	KindFactoredRMDP
	// KindProduct is the synchronous product of a flat model with a DFA.
	KindProduct
)

// String returns the conventional name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIMDP:
		return "IMDP"
	case KindRMDP:
		return "RMDP"
	case KindFactoredIMDP:
		return "Factored-IMDP"
	case KindFactoredRMDP:
		return "Factored-RMDP"
	case KindProduct:
		return "Product"
	default:
		return "Unknown"
	}
}

// System is the closed set of processes the solver accepts. Implemented by
// *IMDP, *Factored and product.Process; the driver type-switches on the
// concrete type, guided by Kind.
type System[R imdp.Real] interface {
	// NumStates returns the total number of (joint) states.
	NumStates() int
	// Kind returns the classification tag used for kernel dispatch.
	Kind() Kind
}
