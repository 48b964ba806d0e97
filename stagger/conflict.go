package stagger

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Conflict names a (current trip, other trip, arc) triple whose delay the
// local search driver may be able to reduce by moving one or both trips.
type Conflict struct {
	Arc ArcID
	// Current is the trip experiencing the delay; Other is the trip
	// occupying the arc it could be reordered against.
	Current, Other TripID
	// Delay is the hypothetical delay on this arc after reordering past
	// this candidate: delay(k+2, arc), where k is the candidate's
	// 0-indexed rank among the others sorted by arrival (the +1 for
	// Current already occupying the arc, +1 for this candidate). Used as
	// the primary sort key (descending) when prioritizing conflicts.
	Delay float64
	// DistanceToCover is how much Other's occupancy must be shortened
	// (or Current's departure delayed past it) to eliminate the
	// conflict: Other's arrival minus Current's departure, plus the tie
	// tolerance so the two are left strictly, not just nominally,
	// ordered.
	DistanceToCover float64
}

// FindConflicts is the conflict searcher: for every trip whose
// experienced travel time exceeds free-flow by more than tolerance, and
// every position along its route with arc-level delay above tolerance, it
// sweeps the arc's conflicting set (exploiting the same sorted-by-earliest-
// departure CONTINUE/EVALUATE/BREAK pruning used by the incremental
// re-evaluator) for trips currently occupying the arc when the current trip
// departs it. Conflicts are returned sorted by descending Delay, then by
// descending Current trip id, matching the order the local-search driver
// processes them in.
func (s *Scheduler) FindConflicts(sol *Solution) []Conflict {
	var out []Conflict
	for t := 0; t < s.inst.NumTrips(); t++ {
		out = append(out, s.conflictsForTrip(sol, TripID(t))...)
	}
	sortConflicts(out)
	return out
}

// ScanConflictsParallel is an opt-in concurrent variant of FindConflicts: it
// runs one goroutine per trip (each reading sol and Instance read-only and
// writing only its own result slot, merged afterwards), at most workers at
// once, under an errgroup.Group so the first worker error cancels the rest.
// FindConflicts stays single-threaded by default; callers that want
// concurrency must reach for this explicitly. workers <= 0 sets no limit:
// all per-trip goroutines may run at once.
func (s *Scheduler) ScanConflictsParallel(ctx context.Context, sol *Solution, workers int) ([]Conflict, error) {
	n := s.inst.NumTrips()
	results := make([][]Conflict, n)

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for t := 0; t < n; t++ {
		t := t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[t] = s.conflictsForTrip(sol, TripID(t))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Conflict
	for _, r := range results {
		out = append(out, r...)
	}
	sortConflicts(out)
	return out, nil
}

// conflictsForTrip is the per-trip body shared by FindConflicts and
// ScanConflictsParallel: it only reads sol and Instance and only appends to
// a slice local to this call, so it is safe to run concurrently across
// distinct trips.
func (s *Scheduler) conflictsForTrip(sol *Solution, tid TripID) []Conflict {
	tol := s.inst.Params().NumericTolerance
	tieTol := s.inst.Params().TieTolerance

	type candidate struct {
		other TripID
		arr   float64
	}

	var out []Conflict
	experienced := sol.Arrival(tid) - sol.StartTime(tid)
	if experienced-s.inst.FreeFlow(tid) <= tol {
		return nil
	}
	route := s.inst.Route(tid)
	for p := 0; p+1 < len(route); p++ {
		arc := route[p]
		if arc == DummyArc {
			continue
		}
		dep, arr := sol.Departure(tid, p), sol.Departure(tid, p+1)
		arcDelay := arr - dep - s.inst.TravelTime(arc)
		if arcDelay <= tol {
			continue
		}

		curEarliest, curLatest := s.inst.Earliest(tid, p), s.inst.Latest(tid, p)
		var cands []candidate

	sweep:
		for _, other := range s.inst.ConflictingUpTo(arc, curLatest) {
			if other == tid {
				continue
			}
			op := s.inst.positionOf(other, arc)
			oe, ol := s.inst.Earliest(other, op), s.inst.Latest(other, op)
			switch sweepDecide(oe, ol, curEarliest, curLatest) {
			case sweepBreak:
				break sweep
			case sweepContinue:
				continue
			}
			oDep, oArr := sol.Departure(other, op), sol.Departure(other, op+1)
			if occupies(oDep, oArr, int(other), dep, int(tid), tol) {
				cands = append(cands, candidate{other, oArr})
			}
		}

		sort.Slice(cands, func(i, j int) bool { return cands[i].arr < cands[j].arr })
		for k, c := range cands {
			out = append(out, Conflict{
				Arc:             arc,
				Current:         tid,
				Other:           c.other,
				Delay:           s.inst.delay(float64(k+2), arc),
				DistanceToCover: c.arr - dep + tieTol,
			})
		}
	}
	return out
}

func sortConflicts(out []Conflict) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Delay != out[j].Delay {
			return out[i].Delay > out[j].Delay
		}
		return out[i].Current > out[j].Current
	})
}
