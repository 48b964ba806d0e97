// Package xsearch provides a generic binary-search bound over the small
// sorted-by-earliest-departure slices the conflicting-set sweeps rely on.
//
// Ported from the same "trim the candidate range up front, then let the
// existing linear pass confirm it" shape the corpus uses for its bounded
// ring buffers: rather than growing or shrinking a container, a single
// search narrows the range a caller then iterates normally.
package xsearch

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// UpperBound returns the index of the first element in the ascending sorted
// slice s that is strictly greater than x, or len(s) if there is none. For a
// slice of earliest-departure times, s[:UpperBound(s, curLatest)] is exactly
// the prefix a BREAK-on-exceeding-curLatest sweep would ever visit.
func UpperBound[E constraints.Ordered](s []E, x E) int {
	return sort.Search(len(s), func(i int) bool { return s[i] > x })
}
