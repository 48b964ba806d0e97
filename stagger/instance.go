package stagger

import (
	"fmt"
	"sort"

	"github.com/joeycumines/staggered-routing/stagger/internal/xsearch"
)

// ArcID identifies a directed arc by a non-negative index. DummyArc (0) is
// a sentinel marking the end of every route: its travel time and delay are
// always zero.
type ArcID int

// TripID identifies a trip by a non-negative index.
type TripID int

// DummyArc is the sentinel arc every route ends with.
const DummyArc ArcID = 0

// Instance is an immutable read model of the network and fleet: routes,
// arc travel times and capacities, time windows, and conflicting sets. It
// is constructed once via NewInstance and shared (read-only) by every
// component of the search for the whole lifetime of that search.
type Instance struct {
	routes      [][]ArcID
	travelTime  []float64
	capacity    []float64
	release     []float64
	deadline    []float64
	earliest    [][]float64
	latest      [][]float64
	conflicting [][]TripID
	// earliestKeys[a] is the parallel slice of earliest-departure-on-a
	// values for conflicting[a], kept in lockstep with it so sweeps can
	// binary-search the BREAK point instead of walking to it.
	earliestKeys [][]float64
	pieces       []DelayPiece
	freeFlow    []float64
	params      Params
}

// InstanceOption configures NewInstance.
type InstanceOption interface {
	applyInstance(*instanceConfig)
}

type instanceConfig struct {
	conflicting [][]TripID
}

type instanceOptionFunc func(*instanceConfig)

func (f instanceOptionFunc) applyInstance(c *instanceConfig) { f(c) }

// WithConflictingSets supplies precomputed conflicting sets, one slice of
// trip ids per arc, indexed by ArcID. When omitted (or when an individual
// arc's slice is nil), NewInstance populates that arc's set by sweeping all
// routes and sorting by ascending earliest departure on the arc, which is
// mandatory for the early-termination sweeps in the conflict searcher and
// the incremental re-evaluator.
func WithConflictingSets(sets [][]TripID) InstanceOption {
	return instanceOptionFunc(func(c *instanceConfig) { c.conflicting = sets })
}

// NewInstance validates and constructs an Instance.
//
// routes holds one ordered arc sequence per trip, each ending in DummyArc.
// travelTime and capacity are indexed by ArcID (DummyArc's entries are
// ignored). release and deadline are indexed by TripID. earliest and latest
// give, per trip, the bound e(t,p)/l(t,p) for every position p in that
// trip's route. pieces is the shared piecewise-linear delay shape, in
// ascending Threshold order.
func NewInstance(
	routes [][]ArcID,
	travelTime, capacity []float64,
	release, deadline []float64,
	earliest, latest [][]float64,
	pieces []DelayPiece,
	params Params,
	opts ...InstanceOption,
) (*Instance, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	n := len(routes)
	if len(release) != n || len(deadline) != n || len(earliest) != n || len(latest) != n {
		return nil, fmt.Errorf("stagger: NewInstance: per-trip slices must all have length %d", n)
	}
	for t, route := range routes {
		if len(route) == 0 || route[len(route)-1] != DummyArc {
			return nil, fmt.Errorf("stagger: NewInstance: route for trip %d must end with DummyArc", t)
		}
		if len(earliest[t]) != len(route) || len(latest[t]) != len(route) {
			return nil, fmt.Errorf("stagger: NewInstance: earliest/latest for trip %d must match route length", t)
		}
		for p := range route {
			if earliest[t][p] > latest[t][p] {
				return nil, fmt.Errorf("stagger: NewInstance: trip %d position %d has earliest > latest", t, p)
			}
		}
	}
	for i := 0; i+1 < len(pieces); i++ {
		if pieces[i].Threshold > pieces[i+1].Threshold {
			return nil, fmt.Errorf("stagger: NewInstance: pieces must be sorted by ascending threshold")
		}
	}

	cfg := &instanceConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyInstance(cfg)
		}
	}

	numArcs := 1 // DummyArc
	for _, route := range routes {
		for _, a := range route {
			if int(a)+1 > numArcs {
				numArcs = int(a) + 1
			}
		}
	}

	inst := &Instance{
		routes:     routes,
		travelTime: travelTime,
		capacity:   capacity,
		release:    release,
		deadline:   deadline,
		earliest:   earliest,
		latest:     latest,
		pieces:     pieces,
		params:     params,
		freeFlow:   make([]float64, n),
	}
	for t, route := range routes {
		var sum float64
		for _, a := range route {
			if a != DummyArc {
				sum += inst.travelTime[a]
			}
		}
		inst.freeFlow[t] = sum
	}

	inst.conflicting = make([][]TripID, numArcs)
	if cfg.conflicting != nil {
		copy(inst.conflicting, cfg.conflicting)
	}
	inst.populateConflictingSets()
	inst.buildEarliestKeys()

	return inst, nil
}

// buildEarliestKeys derives earliestKeys from the now-final conflicting
// sets (whether supplied via WithConflictingSets or built by
// populateConflictingSets); both are required to already be sorted by
// ascending earliest departure on the arc.
func (inst *Instance) buildEarliestKeys() {
	inst.earliestKeys = make([][]float64, len(inst.conflicting))
	for a, set := range inst.conflicting {
		keys := make([]float64, len(set))
		for i, t := range set {
			keys[i] = inst.earliest[t][inst.positionOf(t, ArcID(a))]
		}
		inst.earliestKeys[a] = keys
	}
}

// populateConflictingSets fills in any arc whose conflicting set was not
// supplied explicitly, by sweeping every route and then sorting by ascending
// earliest departure time on that arc: the ordering the sorted sweeps in
// reevaluate.go and conflict.go rely on for their CONTINUE/BREAK shortcuts.
func (inst *Instance) populateConflictingSets() {
	var toBuild []ArcID
	for a := range inst.conflicting {
		if ArcID(a) == DummyArc {
			continue
		}
		if inst.conflicting[a] == nil {
			toBuild = append(toBuild, ArcID(a))
		}
	}
	if len(toBuild) == 0 {
		return
	}
	needsBuild := make(map[ArcID]bool, len(toBuild))
	for _, a := range toBuild {
		needsBuild[a] = true
	}
	for t, route := range inst.routes {
		for _, a := range route {
			if needsBuild[a] {
				inst.conflicting[a] = append(inst.conflicting[a], TripID(t))
			}
		}
	}
	for _, a := range toBuild {
		set := inst.conflicting[a]
		sort.Slice(set, func(i, j int) bool {
			ei := inst.earliest[set[i]][inst.positionOf(set[i], a)]
			ej := inst.earliest[set[j]][inst.positionOf(set[j], a)]
			if ei != ej {
				return ei < ej
			}
			return set[i] < set[j]
		})
	}
}

// positionOf returns the route position of arc a for trip t. Routes are
// short (a handful of arcs), so a linear scan is the right tool here.
func (inst *Instance) positionOf(t TripID, a ArcID) int {
	for p, arc := range inst.routes[t] {
		if arc == a {
			return p
		}
	}
	return -1
}

func (inst *Instance) Route(t TripID) []ArcID        { return inst.routes[t] }
func (inst *Instance) RouteArc(t TripID, p int) ArcID { return inst.routes[t][p] }
func (inst *Instance) RouteLen(t TripID) int          { return len(inst.routes[t]) }
func (inst *Instance) NumTrips() int                  { return len(inst.routes) }

func (inst *Instance) TravelTime(a ArcID) float64 { return inst.travelTime[a] }
func (inst *Instance) Capacity(a ArcID) float64   { return inst.capacity[a] }

func (inst *Instance) Earliest(t TripID, p int) float64 { return inst.earliest[t][p] }
func (inst *Instance) Latest(t TripID, p int) float64   { return inst.latest[t][p] }

// ConflictingSet returns the trips sharing arc a, in ascending
// earliest-departure order on a. Trips not in the set cannot conflict on a.
func (inst *Instance) ConflictingSet(a ArcID) []TripID { return inst.conflicting[a] }

// ConflictingUpTo returns the prefix of ConflictingSet(a) a sweep bounded by
// curLatest would ever visit before BREAKing: every trip in the returned
// slice has an earliest departure on a no greater than curLatest. It is a
// binary-search pre-trim of the same range the CONTINUE/EVALUATE/BREAK scan
// already stops at; callers still run the full sweepDecide switch over the
// returned prefix to handle the CONTINUE (skip) case.
func (inst *Instance) ConflictingUpTo(a ArcID, curLatest float64) []TripID {
	idx := xsearch.UpperBound(inst.earliestKeys[a], curLatest)
	return inst.conflicting[a][:idx]
}

func (inst *Instance) Release(t TripID) float64  { return inst.release[t] }
func (inst *Instance) Deadline(t TripID) float64 { return inst.deadline[t] }
func (inst *Instance) FreeFlow(t TripID) float64 { return inst.freeFlow[t] }

func (inst *Instance) Params() Params { return inst.params }
