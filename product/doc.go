// Package product composes an interval process with a deterministic finite
// automaton under a state labelling.
//
// Given a model M with states S, a DFA D = (Q, δ, q₀, F) over alphabet Σ and
// a labelling L: S → Σ, the product process has state space S × Q. A move at
// ((s, q), a) carries M's ambiguity set for (s, a) on the first coordinate
// and the deterministic step q → δ(q, L(s')) on the second.
//
// Because δ is deterministic, no new ambiguity appears: the product Bellman
// backup is M's O-maximization applied to the value tensor projected through
// δ, V'(s' | q) = V[s', δ(q, L(s'))]. The solver performs exactly that
// projection; this package only holds the validated composition.
//
// Construction checks: |L| = |S|, every label within the DFA's alphabet,
// every δ entry and the initial and accepting states within Q. Violations
// return imdp.ErrDimensionMismatch or imdp.ErrInvalidState.
//
// Product states are indexed row-major: (s, q) ↦ s·|Q| + q.
package product
