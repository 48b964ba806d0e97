package stagger

import "testing"

// wideBounds returns an earliest/latest pair that never triggers the
// CONTINUE/BREAK sweep pruning, so tests can focus on the behavior under
// test without also reasoning about the time-window pruning.
func wideBounds(routeLen int) (earliest, latest []float64) {
	earliest = make([]float64, routeLen)
	latest = make([]float64, routeLen)
	for i := range earliest {
		earliest[i] = -1e9
		latest[i] = 1e9
	}
	return earliest, latest
}

// twoTripOneArcInstance builds the fixture used throughout this package's
// tests: two trips whose entire route is a single capacity-1 arc (id 1)
// with travel time 10, followed by the dummy arc. The delay shape is flat
// (zero) for a single occupant and adds 10 for every occupant beyond
// capacity, so a flow of 2 costs exactly 10 extra.
func twoTripOneArcInstance(t *testing.T, params Params) *Instance {
	t.Helper()
	routes := [][]ArcID{{1, 0}, {1, 0}}
	travelTime := []float64{0, 10}
	capacity := []float64{0, 1}
	release := []float64{0, 0}
	deadline := []float64{1000, 1000}
	e0, l0 := wideBounds(2)
	e1, l1 := wideBounds(2)
	earliest := [][]float64{e0, e1}
	latest := [][]float64{l0, l1}
	pieces := []DelayPiece{{Slope: 0, Threshold: 0}, {Slope: 1, Threshold: 1}}

	inst, err := NewInstance(routes, travelTime, capacity, release, deadline, earliest, latest, pieces, params)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	return inst
}

// threeTripOneArcInstance builds three trips sharing a single zero-delay
// arc (id 1, travel time 10), used to exercise reordering/reinsertion
// without congestion effects clouding the numbers.
func threeTripOneArcInstance(t *testing.T, params Params) *Instance {
	t.Helper()
	routes := [][]ArcID{{1, 0}, {1, 0}, {1, 0}}
	travelTime := []float64{0, 10}
	capacity := []float64{0, 100}
	release := []float64{-1000, -1000, -1000}
	deadline := []float64{1000, 1000, 1000}
	var earliest, latest [][]float64
	for i := 0; i < 3; i++ {
		e, l := wideBounds(2)
		earliest = append(earliest, e)
		latest = append(latest, l)
	}
	pieces := []DelayPiece{{Slope: 0, Threshold: 0}}

	inst, err := NewInstance(routes, travelTime, capacity, release, deadline, earliest, latest, pieces, params)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	return inst
}
