package stagger

import "github.com/rs/zerolog"

// tripStatus is the per-trip state in the incremental re-evaluator: every
// trip starts INACTIVE, becomes ACTIVE when it is seeded or promoted, and
// may pass through STAGING in between when another trip's processing
// determines it must be re-examined.
type tripStatus uint8

const (
	statusInactive tripStatus = iota
	statusStaging
	statusActive
)

// Scheduler owns the reusable buffers shared by the forward simulator, the
// incremental re-evaluator, the conflict searcher and the tie resolver, for
// one Instance. Buffers are reserved once at construction, sized to the
// trip/arc counts, and cleared (not freed) at the start of every call, per
// the resource-lifetime policy: no locking is required because a Scheduler
// is used from a single goroutine at a time.
type Scheduler struct {
	inst   *Instance
	logger zerolog.Logger

	// shared event queue, used by both Construct and Reevaluate (never
	// concurrently, so one reusable buffer suffices for both).
	pq departureHeap

	// Construct-only: one arrival heap per arc.
	arrivals []arrivalHeap

	// Reevaluate-only buffers.
	status      []tripStatus
	lastProcPos []int
	reinsertion []int
	original    [][]float64
	maybeMarks  []maybeMark
	changed     []TripID

	bestTotalDelay float64
}

// maybeMark is a deferred marking decision: whether to promote `other`
// depends on the current trip's new arrival time, not yet known when the
// other's order-flip was first observed.
type maybeMark struct {
	other        TripID
	otherArc     ArcID
	otherPos     int
	wasOverlapped bool
}

// NewScheduler constructs a Scheduler bound to inst, with buffers reserved
// to inst's trip and arc counts.
func NewScheduler(inst *Instance, opts ...SchedulerOption) *Scheduler {
	numArcs := len(inst.conflicting)
	s := &Scheduler{
		inst:     inst,
		logger:   zerolog.Nop(),
		pq:       make(departureHeap, 0, inst.NumTrips()),
		arrivals: make([]arrivalHeap, numArcs),
		status:      make([]tripStatus, inst.NumTrips()),
		lastProcPos: make([]int, inst.NumTrips()),
		reinsertion: make([]int, inst.NumTrips()),
		original:    make([][]float64, inst.NumTrips()),
	}
	for a := range s.arrivals {
		s.arrivals[a] = make(arrivalHeap, 0, len(inst.conflicting[a]))
	}
	for t := 0; t < inst.NumTrips(); t++ {
		s.original[t] = make([]float64, inst.RouteLen(TripID(t)))
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applyScheduler(s)
		}
	}
	return s
}

// Instance returns the Scheduler's bound Instance.
func (s *Scheduler) Instance() *Instance { return s.inst }
