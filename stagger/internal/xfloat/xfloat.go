// Package xfloat provides epsilon-aware comparisons for the small set of
// floating point predicates the scheduler needs: tolerance-bounded equality,
// and a deterministic "which comes first" tie-break that falls back to a
// caller-supplied ordinal when two values are within tolerance of each
// other.
package xfloat

import "math"

// Within reports whether a and b differ by no more than tol.
func Within(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Less reports whether a is strictly less than b outside of tolerance.
func Less(a, b, tol float64) bool {
	return b-a > tol
}

// Before resolves a deterministic strict order over (a, ordinalA) and
// (b, ordinalB): whichever of a, b is smaller outside of tol wins; within
// tol, the smaller ordinal wins. This is the "smaller id passes first on a
// tie" rule used throughout the conflict and marking logic.
func Before(a float64, ordinalA int, b float64, ordinalB int, tol float64) bool {
	if Less(a, b, tol) {
		return true
	}
	if Less(b, a, tol) {
		return false
	}
	return ordinalA < ordinalB
}
