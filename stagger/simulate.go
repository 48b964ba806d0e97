package stagger

import (
	"fmt"
	"math"
)

// Construct runs the forward simulator from scratch: given start
// times, one per trip, it produces the congested schedule by event-driven
// propagation through a priority queue of departures. This is the public
// entry point named construct(start_times) in the external interface; it
// always seeds best_total_delay at +∞, matching a first, unconstrained
// evaluation.
func (s *Scheduler) Construct(startTimes []float64) (*Solution, error) {
	s.bestTotalDelay = math.Inf(1)
	return s.construct(startTimes)
}

// construct is the internal entry point shared with the local-search
// driver, which sets s.bestTotalDelay to the incumbent's total delay before
// calling it, so that construction aborts as soon as it can no longer beat
// the current best (the cross-component best_total_delay contract).
func (s *Scheduler) construct(startTimes []float64) (*Solution, error) {
	if len(startTimes) != s.inst.NumTrips() {
		return nil, fmt.Errorf("stagger: construct: expected %d start times, got %d", s.inst.NumTrips(), len(startTimes))
	}
	tol := s.inst.Params().NumericTolerance
	for t := range startTimes {
		if startTimes[t] < s.inst.Release(TripID(t))-tol {
			return nil, fmt.Errorf("stagger: construct: trip %d start time %v is below release time %v", t, startTimes[t], s.inst.Release(TripID(t)))
		}
	}

	sol := newSolution(s.inst, startTimes)

	s.pq.reset()
	for a := range s.arrivals {
		s.arrivals[a].reset()
	}
	for t := 0; t < s.inst.NumTrips(); t++ {
		tid := TripID(t)
		s.pq.push(departure{
			time:     startTimes[t],
			arc:      s.inst.RouteArc(tid, 0),
			trip:     tid,
			position: 0,
		})
	}

	for {
		ev, ok := s.pq.pop()
		if !ok {
			break
		}
		sol.schedule[ev.trip][ev.position] = ev.time

		if ev.arc == DummyArc {
			// The trip has arrived; its final schedule entry is already
			// recorded above. Nothing more to propagate.
			continue
		}

		flow := float64(s.arrivals[ev.arc].drain(ev.time) + 1)
		delay := s.inst.delay(flow, ev.arc)
		arrival := ev.time + s.inst.TravelTime(ev.arc) + delay
		sol.totalDelay += delay
		s.arrivals[ev.arc].push(arrival)

		if sol.totalDelay >= s.bestTotalDelay {
			sol.Infeasible = true
			sol.NonImproving = true
			return sol, nil
		}
		if arrival > s.inst.Deadline(ev.trip)+tol {
			sol.Infeasible = true
			return sol, nil
		}

		if next := ev.position + 1; next < s.inst.RouteLen(ev.trip) {
			s.pq.push(departure{
				time:     arrival,
				arc:      s.inst.RouteArc(ev.trip, next),
				trip:     ev.trip,
				position: next,
			})
		}
	}

	return sol, nil
}
