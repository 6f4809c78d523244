package imdp

// Real is the numeric parameter of the whole engine. Every value vector,
// probability bound and residual is expressed in one concrete Real type,
// chosen once per model and carried through generics.
//
// float64 is the sensible default; float32 halves the memory footprint of
// large value tensors at the usual precision cost. Comparisons inside the
// termination check use the type's natural order and residuals are absolute
// (no relative-tolerance heuristic at this layer).
type Real interface {
	~float32 | ~float64
}
