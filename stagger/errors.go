package stagger

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is wrapped by every fatal error the engine raises.
// Unlike the benign Solution flags (Infeasible, HasTies, NonImproving),
// which represent a rejected move that the local search simply reverts,
// an error satisfying errors.Is(err, ErrInvariantViolation) means the
// internal bookkeeping is inconsistent and the search must stop.
var ErrInvariantViolation = errors.New("stagger: invariant violation")

// InvariantError describes a fatal inconsistency detected mid-search: a
// trip whose reinsertion counter exceeds its bound, a TRAVEL event popped
// for a trip that is STAGING or INACTIVE, a conflicting-set member that does
// not traverse its arc, or a conflict whose staggering loop does not
// converge. An ACTIVATION popped for a trip that is not STAGING is dropped
// as stale, not reported; event times and flow counts are not re-derived
// and checked against the schedule.
type InvariantError struct {
	// Op names the operation that detected the violation (e.g. "reevaluate.process").
	Op string
	// Trip and Arc identify the offending event, when applicable; -1 if not.
	Trip, Arc int
	// Iteration is the staggering attempt count for a conflict that did
	// not converge; it is -1 for violations detected inside Reevaluate,
	// which does not carry the outer local-search iteration.
	Iteration int
	Reason    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("stagger: %s: %s (trip=%d arc=%d iteration=%d)", e.Op, e.Reason, e.Trip, e.Arc, e.Iteration)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

func invariantf(op string, trip, arc, iteration int, format string, args ...any) error {
	return &InvariantError{
		Op:        op,
		Trip:      trip,
		Arc:       arc,
		Iteration: iteration,
		Reason:    fmt.Sprintf(format, args...),
	}
}
