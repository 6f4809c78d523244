// SPDX-License-Identifier: MIT
// Package imdp: shared sentinel error set.
// This file defines ONLY the module-level sentinel errors shared by every
// subpackage. Subpackages wrap these with fmt.Errorf("pkg: ...: %w", ErrX)
// so that callers match the kind via errors.Is while logs keep local context.
// All validation happens at construction time; the value-iteration hot path
// assumes pre-validated inputs and never re-checks.

package imdp

import "errors"

var (
	// ErrDimensionMismatch indicates matrix shapes or action-offset arrays
	// inconsistent with the state count or marginal shapes.
	ErrDimensionMismatch = errors.New("imdp: dimension mismatch")

	// ErrInvalidAmbiguitySet indicates at least one ambiguity-set column
	// violates 0 ≤ lower, lower+gap ≤ 1, or Σlower ≤ 1 ≤ Σupper.
	ErrInvalidAmbiguitySet = errors.New("imdp: invalid ambiguity set")

	// ErrInvalidState indicates a target/avoid/initial state index out of
	// range, or with the wrong dimensionality for the model.
	ErrInvalidState = errors.New("imdp: invalid state")

	// ErrInvalidSpecification indicates a non-positive horizon or tolerance,
	// a discount factor out of range, non-disjoint reach and avoid sets, an
	// infinite-horizon property on a time-varying model, or a time-varying
	// strategy whose length differs from the horizon.
	ErrInvalidSpecification = errors.New("imdp: invalid specification")

	// ErrIncompatibleModelAndProperty indicates a property that cannot be
	// evaluated on the given model kind, e.g. a DFA-valued property on a
	// non-product model or a flat-state property on a product model.
	ErrIncompatibleModelAndProperty = errors.New("imdp: incompatible model and property")

	// ErrCancelled is returned by the driver when the caller's context is
	// cancelled between iterations. The value array at the last completed
	// iteration is still returned alongside it.
	ErrCancelled = errors.New("imdp: cancelled")
)
