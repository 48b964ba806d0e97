package stagger

import "github.com/joeycumines/staggered-routing/stagger/internal/xfloat"

// sweepInstruction is the three-way decision exploited by every sweep over
// a conflicting set, which is sorted ascending by earliest departure on the
// arc: CONTINUE means this candidate cannot conflict but a later one might,
// EVALUATE means check it properly, and BREAK means no remaining candidate
// can conflict either, so the sweep stops early.
//
// The original source re-implements this same pruning independently in the
// incremental re-evaluator and in the conflict searcher; this package
// consolidates both call sites onto the single implementation below.
type sweepInstruction uint8

const (
	sweepContinue sweepInstruction = iota
	sweepEvaluate
	sweepBreak
)

// sweepDecide exploits the conflicting set's sort order: candidates are
// considered in ascending order of their own earliest departure on the arc.
// If a candidate's earliest departure is already later than the current
// trip's latest possible arrival, no later candidate (with an even later
// earliest departure) can conflict either, so the caller should stop. If a
// candidate's latest possible arrival already precedes the current trip's
// earliest departure, this candidate cannot conflict, but a later candidate
// might, so the caller should skip and keep scanning.
func sweepDecide(otherEarliest, otherLatest, curEarliest, curLatest float64) sweepInstruction {
	if otherEarliest > curLatest {
		return sweepBreak
	}
	if otherLatest < curEarliest {
		return sweepContinue
	}
	return sweepEvaluate
}

// before reports whether (xTime, xID) strictly precedes (yTime, yID) in the
// deterministic total order the engine imposes on simultaneous events:
// earlier time wins outside of tolerance; within tolerance, the smaller id
// "passes first". This single rule underlies tie-breaking in the event
// queue, in conflict detection, and in the marking rules.
func before(xTime float64, xID int, yTime float64, yID int, tol float64) bool {
	return xfloat.Before(xTime, xID, yTime, yID, tol)
}

// occupies reports whether the trip occupying [depOther, arrOther) on an
// arc, identified by otherID, is still on the arc at curTime, from the
// point of view of a candidate event belonging to curID. curTime falls
// within the occupancy interval iff it is not strictly before depOther and
// is strictly before arrOther, both checked with the deterministic
// tie-break order above.
func occupies(depOther, arrOther float64, otherID int, curTime float64, curID int, tol float64) bool {
	if before(curTime, curID, depOther, otherID, tol) {
		return false
	}
	return before(curTime, curID, arrOther, otherID, tol)
}
