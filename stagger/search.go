package stagger

import (
	"fmt"
	"time"
)

// repushBound guards the inner staggering-action loop for a single conflict
// against cycling: the formula in resolveConflict always closes the
// distance-to-cover in one application when it succeeds, so a real run
// visits this loop once or twice; exceeding the bound means the conflict's
// distance is not shrinking and bookkeeping is inconsistent.
const repushBound = 1000

// Run is the local-search driver and the package's top-level entry
// point: it constructs the initial schedule, resolves any ties in it, and
// then, budget permitting, iteratively reduces total delay by staggering
// conflicting trips, periodically resynchronizing via Construct, until no
// improving conflict remains or the wall-clock budget expires.
//
// remainingSlack and staggeringApplied are asserted preconditions, per the
// external interface: remainingSlack[t] must equal latest(t,0)-startTimes[t]
// and staggeringApplied[t] must equal startTimes[t]-release(t). Run
// validates both against the Instance and returns a plain error if either
// disagrees, rather than silently recomputing them.
func (s *Scheduler) Run(startTimes, remainingSlack, staggeringApplied []float64) (*Solution, Stats, error) {
	var stats Stats
	n := s.inst.NumTrips()
	if len(startTimes) != n || len(remainingSlack) != n || len(staggeringApplied) != n {
		return nil, stats, fmt.Errorf("stagger: Run: start times, remaining slack and staggering applied must all have length %d", n)
	}
	tol := s.inst.Params().NumericTolerance
	for t := 0; t < n; t++ {
		tid := TripID(t)
		wantSlack := s.inst.Latest(tid, 0) - startTimes[t]
		if abs(wantSlack-remainingSlack[t]) > tol {
			return nil, stats, fmt.Errorf("stagger: Run: remainingSlack[%d] = %v, want %v", t, remainingSlack[t], wantSlack)
		}
		wantStagger := startTimes[t] - s.inst.Release(tid)
		if abs(wantStagger-staggeringApplied[t]) > tol {
			return nil, stats, fmt.Errorf("stagger: Run: staggeringApplied[%d] = %v, want %v", t, staggeringApplied[t], wantStagger)
		}
	}

	sol, err := s.Construct(startTimes)
	if err != nil {
		return nil, stats, err
	}
	if sol.Infeasible {
		s.logger.Debug().Msg("stagger: initial construction infeasible, returning immediately")
		return sol, stats, nil
	}

	sol, err = s.ResolveTies(sol)
	if err != nil {
		return nil, stats, err
	}
	if sol.HasTies {
		s.logger.Debug().Msg("stagger: initial schedule could not be made tie-free, returning immediately")
		return sol, stats, nil
	}

	params := s.inst.Params()
	if params.MaxTimeOptimization <= 0 {
		return sol, stats, nil
	}

	s.logger.Debug().Msg("stagger: local search starting")
	cutoff := time.Now().Add(params.MaxTimeOptimization)
	acceptedSinceResync := 0

	for !time.Now().After(cutoff) {
		s.bestTotalDelay = sol.TotalDelay()
		conflicts := s.FindConflicts(sol)
		if len(conflicts) == 0 {
			break
		}

		acceptedThisIteration := false
		for _, c := range conflicts {
			if time.Now().After(cutoff) {
				break
			}
			if c.DistanceToCover <= tol {
				continue
			}
			stats.ExploredSolutions++

			accepted, err := s.resolveConflict(sol, c, &stats, tol)
			if err != nil {
				return nil, stats, err
			}
			if accepted {
				stats.AcceptedMoves++
				acceptedThisIteration = true
				acceptedSinceResync++
				if acceptedSinceResync >= params.ResyncPeriod {
					sol, err = s.Construct(sol.StartTimes())
					if err != nil {
						return nil, stats, err
					}
					stats.Resyncs++
					acceptedSinceResync = 0
					sol, err = s.ResolveTies(sol)
					if err != nil {
						return nil, stats, err
					}
					if sol.HasTies {
						s.logger.Debug().Msg("stagger: resync could not be made tie-free, returning immediately")
						return sol, stats, nil
					}
				}
				// later moves must beat the accepted one; a resync via
				// Construct has also reset the benchmark to +Inf.
				s.bestTotalDelay = sol.TotalDelay()
			}
		}

		if !acceptedThisIteration {
			break
		}
	}

	final, err := s.Construct(sol.StartTimes())
	if err != nil {
		return nil, stats, err
	}
	stats.Resyncs++
	final, err = s.ResolveTies(final)
	if err != nil {
		return nil, stats, err
	}
	s.logger.Debug().Int("accepted_moves", stats.AcceptedMoves).Int("resyncs", stats.Resyncs).Msg("stagger: local search finished")
	return final, stats, nil
}

// resolveConflict applies the staggering-choice formula to a single
// conflict, re-evaluating and re-checking the distance-to-cover after each
// application, until the conflict closes, slack runs out, or repushBound is
// exceeded. On success it leaves sol mutated in place and returns true; on
// any rejection it restores sol to its pre-attempt state and returns false.
func (s *Scheduler) resolveConflict(sol *Solution, c Conflict, stats *Stats, tol float64) (bool, error) {
	snapshot := sol.clone()

	for attempt := 0; ; attempt++ {
		if attempt > repushBound {
			return false, invariantf("search.resolveConflict", int(c.Current), int(c.Arc), attempt,
				"conflict between trips %d and %d did not converge within %d staggering attempts", c.Current, c.Other, repushBound)
		}

		curPos := s.inst.positionOf(c.Current, c.Arc)
		otherPos := s.inst.positionOf(c.Other, c.Arc)
		dep := sol.Departure(c.Current, curPos)
		otherArr := sol.Departure(c.Other, otherPos+1)
		d := otherArr - dep + s.inst.Params().TieTolerance
		if d <= tol {
			return true, nil
		}

		r := sol.RemainingSlack(s.inst, c.Current)
		g := sol.Staggering(s.inst, c.Other)

		var changed []TripID
		var shiftA, shiftB float64
		switch {
		case d < r:
			shiftA = d
			changed = []TripID{c.Current}
		case d < r+g:
			shiftA = r
			shiftB = d - r
			changed = []TripID{c.Current, c.Other}
		default:
			stats.SlackNotEnough++
			sol.restore(snapshot)
			return false, nil
		}

		if shiftA == 0 && shiftB == 0 {
			stats.NoStaggeringAppliedSolutions++
		}

		sol.startTimes[c.Current] += shiftA
		if shiftB != 0 {
			sol.startTimes[c.Other] -= shiftB
		}

		if err := s.Reevaluate(sol, changed); err != nil {
			return false, err
		}

		switch {
		case sol.HasTies:
			stats.SolutionWithTies++
		case sol.Infeasible:
			stats.LateSolutions++
		case sol.NonImproving:
			stats.WorseSolutions++
		default:
			continue // re-check distance-to-cover with the updated schedule
		}

		sol.restore(snapshot)
		return false, nil
	}
}
