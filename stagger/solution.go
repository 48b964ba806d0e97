package stagger

// Solution is the mutable per-search state: for each trip, a start time and
// a schedule vector giving the departure time from each position in its
// route. It is created from start times by Construct, mutated exclusively
// by the forward simulator, the incremental re-evaluator and the tie
// resolver during local search, and committed back to the driver when
// feasible and improving, or discarded otherwise.
type Solution struct {
	startTimes []float64
	// schedule[t][p] is S(t,p): the departure time from position p of
	// trip t's route. For the last position (always DummyArc), S(t,p)
	// equals the trip's final arrival, since DummyArc's travel time and
	// delay are both zero.
	schedule [][]float64

	totalDelay float64

	// Infeasible, HasTies and NonImproving are benign flags: a solution
	// carrying any of them is rejected by the local search driver (the
	// move is reverted) rather than surfaced as an error.
	Infeasible   bool
	HasTies      bool
	NonImproving bool
}

// newSolution allocates a Solution with zeroed schedules for the given
// start times, one schedule slot per route position.
func newSolution(inst *Instance, startTimes []float64) *Solution {
	n := len(startTimes)
	sol := &Solution{
		startTimes: append([]float64(nil), startTimes...),
		schedule:   make([][]float64, n),
	}
	for t := 0; t < n; t++ {
		sol.schedule[t] = make([]float64, inst.RouteLen(TripID(t)))
	}
	return sol
}

// clone deep-copies a Solution; used to snapshot state before a speculative
// move so it can be restored verbatim if the move is rejected.
func (s *Solution) clone() *Solution {
	out := &Solution{
		startTimes:   append([]float64(nil), s.startTimes...),
		schedule:     make([][]float64, len(s.schedule)),
		totalDelay:   s.totalDelay,
		Infeasible:   s.Infeasible,
		HasTies:      s.HasTies,
		NonImproving: s.NonImproving,
	}
	for t, row := range s.schedule {
		out.schedule[t] = append([]float64(nil), row...)
	}
	return out
}

// restore overwrites s in place from other, used to revert a rejected move
// without reallocating the receiver (other is typically a snapshot taken
// moments earlier).
func (s *Solution) restore(other *Solution) {
	copy(s.startTimes, other.startTimes)
	for t := range s.schedule {
		copy(s.schedule[t], other.schedule[t])
	}
	s.totalDelay = other.totalDelay
	s.Infeasible = other.Infeasible
	s.HasTies = other.HasTies
	s.NonImproving = other.NonImproving
}

// StartTime returns s(t).
func (s *Solution) StartTime(t TripID) float64 { return s.startTimes[t] }

// StartTimes returns the per-trip start-time vector. The returned slice is
// owned by the caller; mutating it does not affect the Solution.
func (s *Solution) StartTimes() []float64 { return append([]float64(nil), s.startTimes...) }

// Departure returns S(t,p), the departure time from position p of t's route.
func (s *Solution) Departure(t TripID, p int) float64 { return s.schedule[t][p] }

// Arrival returns the trip's final arrival time: S(t, last).
func (s *Solution) Arrival(t TripID) float64 {
	row := s.schedule[t]
	return row[len(row)-1]
}

// TotalDelay returns Σ_t [S(t,last) - s(t) - freeflow(t)].
func (s *Solution) TotalDelay() float64 { return s.totalDelay }

// TotalTravelTime returns TotalDelay() plus the instance's free-flow lower
// bound, i.e. the sum of realized travel times over all trips.
func (s *Solution) TotalTravelTime(lbTravelTime float64) float64 {
	return s.totalDelay + lbTravelTime
}

// RemainingSlack returns remaining_slack(t) = latest(t,0) - s(t).
func (s *Solution) RemainingSlack(inst *Instance, t TripID) float64 {
	return inst.Latest(t, 0) - s.startTimes[t]
}

// Staggering returns staggering(t) = s(t) - release(t).
func (s *Solution) Staggering(inst *Instance, t TripID) float64 {
	return s.startTimes[t] - inst.Release(t)
}

// DelaysOnArcs returns, per trip, the per-position delay experienced:
// S(t,p+1) - S(t,p) - T(route(t,p)), with a trailing 0 for the dummy arc's
// own position (which never carries delay).
func (s *Solution) DelaysOnArcs(inst *Instance) [][]float64 {
	out := make([][]float64, len(s.schedule))
	for t, row := range s.schedule {
		delays := make([]float64, len(row))
		route := inst.Route(TripID(t))
		for p := 0; p+1 < len(row); p++ {
			delays[p] = row[p+1] - row[p] - inst.TravelTime(route[p])
		}
		out[t] = delays
	}
	return out
}
