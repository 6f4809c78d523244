// SPDX-License-Identifier: MIT

// Package model constructs the processes the solver iterates over: flat
// interval MDPs and Markov chains, and factored models whose transition
// kernel is a product of low-dimensional marginals.
//
// 🚀 Shapes
//
// A flat IMDP stores all (source, action) columns of its ambiguity-set
// collection contiguously and indexes them with a CSC-style offset array
// stateptr of length |S|+1: the action columns of source s are
// stateptr[s] .. stateptr[s+1]−1. A Markov chain is the special case of one
// action per state, exposed first-class as NewIMC.
//
// A factored model is an ordered tuple of N marginals, one per state
// variable. Marginal i distributes the next value of variable i conditioned
// on a subset of the state and action variables; its ambiguity sets hold one
// column per joint value of (action deps, state deps), actions varying
// fastest. The induced joint kernel is the product of the marginals, and the
// joint ambiguity set is the Cartesian product of their boxes — never
// materialized on the solve path. Materialize builds the explicit Kronecker
// hull when a flat cross-check is wanted.
//
// Source shapes smaller than the global cardinality designate implicit sink
// states: sources outside the stored slices keep their coordinate unchanged.
//
// Validation happens here, once, at construction:
//
//   - stateptr strictly increasing, stateptr[0]=0, stateptr[|S|]=columns
//   - state/action variable counts positive, source shapes componentwise
//     within the global cardinalities
//   - every marginal's target cardinality equals its variable's cardinality
//   - every marginal's column count equals the product of its shapes
//
// Errors wrap the root sentinels imdp.ErrDimensionMismatch and
// imdp.ErrInvalidState.
package model
