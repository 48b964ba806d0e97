// Package stagger computes congestion-aware schedules for a fleet of trips
// moving over a shared directed network, then iteratively improves those
// schedules by redistributing trip start times (staggering) to reduce total
// delay.
//
// # Architecture
//
// An [Instance] is an immutable read model of the network: routes, arc
// travel times and capacities, time windows and conflicting sets. Given an
// Instance and a vector of start times, [Scheduler.Construct] runs the
// event-driven forward simulator to produce a congested [Solution].
// [Scheduler.Run] wraps
// Construct with a local-search loop: it repeatedly finds the
// highest-leverage conflict between two trips sharing a congested arc,
// tries to resolve it by shifting one or both trips' start times within
// their slack budgets, re-evaluates the schedule incrementally rather than
// from scratch, and keeps the move only if it strictly reduces total delay
// without introducing infeasibility or timing ties.
//
// The four algorithms that matter are the forward simulator (simulate.go),
// the incremental re-evaluator (reevaluate.go) that is the reason the local
// search can explore thousands of candidate moves without thousands of full
// reconstructions, the conflict searcher (conflict.go), and the tie resolver
// (tie.go). They share one invariant structure: an event priority queue, a
// per-trip processing cursor, and a marking discipline that decides which
// trips must be re-examined after a perturbation. DESIGN.md records how each
// one is grounded.
//
// # Non-goals
//
// The package does not compute routes, does not mutate arc topology, and
// does not guarantee a globally optimal schedule: [Scheduler.Run] stops when
// no conflict remains, when a full pass over the conflicts accepts no move,
// or when the wall-clock budget expires, whichever comes first.
package stagger
