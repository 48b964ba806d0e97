package stagger

// Reevaluate is the incremental re-evaluator: after the driver has
// perturbed one or two trips' start times (the trips named in changed),
// it updates the existing congested Solution in place, in time proportional
// to the affected region, rather than recomputing the whole schedule.
//
// The caller must have already written the new start time(s) into
// sol.startTimes for every trip in changed before calling Reevaluate; it is
// Reevaluate's job to propagate that change through schedule (t).
//
// Reevaluate sets sol.Infeasible, sol.HasTies or sol.NonImproving and
// returns nil when the move is rejected for an ordinary (benign) reason.
// It returns a non-nil error only for a fatal invariant violation.
func (s *Scheduler) Reevaluate(sol *Solution, changed []TripID) error {
	tol := s.inst.Params().NumericTolerance

	for t, row := range sol.schedule {
		copy(s.original[t], row)
	}
	for i := range s.status {
		s.status[i] = statusInactive
		s.lastProcPos[i] = -1
		s.reinsertion[i] = 0
	}
	sol.Infeasible = false
	sol.HasTies = false
	sol.NonImproving = false

	s.pq.reset()
	for _, t := range changed {
		sol.schedule[t][0] = sol.startTimes[t]
		s.status[t] = statusActive
		s.lastProcPos[t] = -1
		s.pq.push(departure{
			time:     sol.startTimes[t],
			arc:      s.inst.RouteArc(t, 0),
			trip:     t,
			position: 0,
			typ:      eventTravel,
		})
	}

	for {
		ev, ok := s.pq.pop()
		if !ok {
			break
		}

		switch ev.typ {
		case eventActivation:
			if s.status[ev.trip] != statusStaging {
				continue // stale: already active, or never marked
			}
			s.status[ev.trip] = statusActive
			s.lastProcPos[ev.trip] = ev.position - 1
			ev.typ = eventTravel
		case eventTravel:
			if ev.arc == DummyArc {
				continue
			}
			if s.status[ev.trip] != statusActive {
				return invariantf("reevaluate", int(ev.trip), int(ev.arc), -1,
					"TRAVEL event popped for a trip that is not ACTIVE (status=%d)", s.status[ev.trip])
			}
			if ev.position != s.lastProcPos[ev.trip]+1 || ev.reinsertion != s.reinsertion[ev.trip] {
				continue // stale: superseded by a later reinsertion
			}
		}

		t, p, arc := ev.trip, ev.position, ev.arc
		sol.schedule[t][p] = ev.time

		if arc == DummyArc {
			s.lastProcPos[t] = p
			continue
		}

		lazy, flow, err := s.sweepAndMark(sol, t, arc, p, ev.time)
		if err != nil {
			return err
		}
		if lazy {
			s.pq.push(ev)
			continue
		}

		delay := s.inst.delay(flow, arc)
		newArrival := ev.time + s.inst.TravelTime(arc) + delay

		if s.checkTies(sol, t, arc, p, ev.time, newArrival) {
			sol.HasTies = true
			sol.Infeasible = true
			return nil
		}
		if newArrival > s.inst.Latest(t, p+1)+tol {
			sol.Infeasible = true
			return nil
		}

		s.resolveMaybeMarks(ev.time, newArrival, tol)

		sol.schedule[t][p+1] = newArrival
		s.lastProcPos[t] = p

		if next := p + 1; next < s.inst.RouteLen(t) {
			s.pq.push(departure{
				time:        newArrival,
				arc:         s.inst.RouteArc(t, next),
				trip:        t,
				position:    next,
				typ:         eventTravel,
				reinsertion: s.reinsertion[t],
			})
		}
	}

	var delta float64
	for t := 0; t < s.inst.NumTrips(); t++ {
		if s.status[t] != statusActive {
			continue
		}
		tid := TripID(t)
		newLast, newStart := sol.Arrival(tid), sol.startTimes[t]
		oldRow := s.original[t]
		oldLast, oldStart := oldRow[len(oldRow)-1], oldRow[0]
		ff := s.inst.FreeFlow(tid)
		delta += (newLast - newStart - ff) - (oldLast - oldStart - ff)
	}
	sol.totalDelay += delta

	if sol.totalDelay >= s.bestTotalDelay {
		sol.NonImproving = true
	}
	return nil
}

// sweepAndMark implements step 3d of the procedure: it walks the arc's
// conflicting set (sorted by earliest departure on the arc) using the
// CONTINUE/EVALUATE/BREAK pruning, accumulating flow, immediately marking
// any INACTIVE trip whose order has flipped to "now first" when warranted,
// deferring the ambiguous cases to maybeMarks, and reinserting any ACTIVE,
// already-processed trip whose order has reversed against the current
// trip. It returns the flow the current trip finds on arc, and whether an
// immediate mark occurred (the lazy-update flag: the caller must re-push
// the current event and restart, since marking can change the correct
// processing order).
func (s *Scheduler) sweepAndMark(sol *Solution, t TripID, arc ArcID, p int, evTime float64) (lazy bool, flow float64, err error) {
	tol := s.inst.Params().NumericTolerance
	flow = 1
	s.maybeMarks = s.maybeMarks[:0]
	curEarliest, curLatest := s.inst.Earliest(t, p), s.inst.Latest(t, p)

sweep:
	for _, other := range s.inst.ConflictingUpTo(arc, curLatest) {
		if other == t {
			continue
		}
		otherPos := s.inst.positionOf(other, arc)
		if otherPos < 0 {
			return false, 0, invariantf("reevaluate.sweep", int(t), int(arc), -1,
				"trip %d is in arc %d's conflicting set but does not traverse it", other, arc)
		}
		oe, ol := s.inst.Earliest(other, otherPos), s.inst.Latest(other, otherPos)
		switch sweepDecide(oe, ol, curEarliest, curLatest) {
		case sweepBreak:
			break sweep
		case sweepContinue:
			continue
		}

		processed := s.status[other] == statusActive && otherPos <= s.lastProcPos[other]
		otherDep := sol.schedule[other][otherPos]
		otherArr := sol.schedule[other][otherPos+1]

		if processed {
			origOtherDep := s.original[other][otherPos]
			origCurDep := s.original[t][p]
			wasFirst := before(origOtherDep, int(other), origCurDep, int(t), tol)
			isFirstNow := before(otherDep, int(other), evTime, int(t), tol)
			if wasFirst && !isFirstNow {
				if err := s.reinsertOther(sol, other, otherPos); err != nil {
					return false, 0, err
				}
				continue
			}
			if occupies(otherDep, otherArr, int(other), evTime, int(t), tol) {
				flow++
			}
			continue
		}

		if occupies(otherDep, otherArr, int(other), evTime, int(t), tol) {
			flow++
		}
		if s.status[other] != statusInactive {
			continue // already staging or active-but-unreached; no further marking
		}

		origOtherDep := s.original[other][otherPos]
		var origOtherArr float64
		if otherPos+1 < len(s.original[other]) {
			origOtherArr = s.original[other][otherPos+1]
		}
		origCurDep := s.original[t][p]
		wasFirst := before(origOtherDep, int(other), origCurDep, int(t), tol)
		isFirstNow := before(otherDep, int(other), evTime, int(t), tol)
		wasOverlapped := occupies(origOtherDep, origOtherArr, int(other), origCurDep, int(t), tol)

		switch {
		case wasFirst && isFirstNow:
			// no change in relative order: nothing to do.
		case !wasFirst && isFirstNow:
			if wasOverlapped || occupies(otherDep, otherArr, int(other), evTime, int(t), tol) {
				s.markStaging(other, sol)
				lazy = true
			}
		default:
			s.maybeMarks = append(s.maybeMarks, maybeMark{other: other, otherArc: arc, otherPos: otherPos, wasOverlapped: wasOverlapped})
		}
	}
	return lazy, flow, nil
}

// resolveMaybeMarks implements step h: now that the current trip's new
// arrival on this arc is known, decide each deferred candidate. A
// candidate is marked if its original departure on this arc still falls
// within [evTime, newArrival), or its overlap history with the current
// trip already required a recount.
func (s *Scheduler) resolveMaybeMarks(evTime, newArrival, tol float64) {
	for _, mm := range s.maybeMarks {
		if s.status[mm.other] != statusInactive {
			continue
		}
		origDep := s.original[mm.other][mm.otherPos]
		inWindow := origDep >= evTime-tol && origDep < newArrival-tol
		if inWindow || mm.wasOverlapped {
			s.markStaging(mm.other, nil)
		}
	}
	s.maybeMarks = s.maybeMarks[:0]
}

// markStaging promotes an INACTIVE trip to STAGING and pushes its
// ACTIVATION event at position 0, the trip's (untouched) original start
// time. sol may be nil when called from resolveMaybeMarks, where the push
// time only depends on the trip's own unmodified schedule, already
// available via s.original.
func (s *Scheduler) markStaging(other TripID, sol *Solution) {
	if s.status[other] != statusInactive {
		return
	}
	s.status[other] = statusStaging
	startTime := s.original[other][0]
	if sol != nil {
		startTime = sol.schedule[other][0]
	}
	s.pq.push(departure{
		time:     startTime,
		arc:      s.inst.RouteArc(other, 0),
		trip:     other,
		position: 0,
		typ:      eventActivation,
	})
}

// reinsertOther restores other's schedule from position+1 onward to the
// pre-move snapshot, rewinds its processing cursor back to just before
// otherPos, bumps its reinsertion counter, and re-enqueues a TRAVEL event
// for otherPos so it is reprocessed in the new order.
func (s *Scheduler) reinsertOther(sol *Solution, other TripID, otherPos int) error {
	for step := otherPos; step <= s.lastProcPos[other]; step++ {
		sol.schedule[other][step+1] = s.original[other][step+1]
	}
	s.lastProcPos[other] = otherPos - 1
	s.reinsertion[other]++
	if s.reinsertion[other] > reinsertionOverflowBound {
		return invariantf("reevaluate.reinsert", int(other), int(s.inst.RouteArc(other, otherPos)), -1,
			"reinsertion counter exceeded %d; the event queue is likely cycling", reinsertionOverflowBound)
	}
	s.pq.push(departure{
		time:        sol.schedule[other][otherPos],
		arc:         s.inst.RouteArc(other, otherPos),
		trip:        other,
		position:    otherPos,
		typ:         eventTravel,
		reinsertion: s.reinsertion[other],
	})
	return nil
}

// reinsertionOverflowBound is a generous ceiling on how many times a single
// trip may be reinserted within one Reevaluate call. Legitimate runs touch
// this only a handful of times even under heavy churn; exceeding it means
// the marking/reinsertion logic is cycling and the search must stop.
const reinsertionOverflowBound = 1_000_000
