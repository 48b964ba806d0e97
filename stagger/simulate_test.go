package stagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruct_SingleTripNoCongestion(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0, 500})
	require.NoError(t, err)
	require.False(t, sol.Infeasible)
	assert.InDelta(t, 10, sol.Arrival(0), 1e-9)
	assert.InDelta(t, 0, sol.TotalDelay(), 1e-9)
}

func TestConstruct_TwoTripsShareArc_TripIDBreaksTie(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0, 0})
	require.NoError(t, err)
	require.False(t, sol.Infeasible)

	// trip 0 departs first on the tie-break (smaller id), finds flow 1 and
	// no delay; trip 1 finds flow 2 and the piecewise shape's 10-unit step.
	assert.InDelta(t, 10, sol.Arrival(0), 1e-9)
	assert.InDelta(t, 20, sol.Arrival(1), 1e-9)
	assert.InDelta(t, 10, sol.TotalDelay(), 1e-9)
}

func TestConstruct_RejectsWrongLengthStartTimes(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)
	_, err := sched.Construct([]float64{0})
	require.Error(t, err)
}

func TestConstruct_RejectsStartBeforeRelease(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)
	_, err := sched.Construct([]float64{-1, 0})
	require.Error(t, err)
}

func TestConstruct_DeadlineViolationMarksInfeasible(t *testing.T) {
	routes := [][]ArcID{{1, 0}}
	e, l := wideBounds(2)
	inst, err := NewInstance(
		routes,
		[]float64{0, 10}, []float64{0, 1},
		[]float64{0}, []float64{5}, // deadline of 5, travel time alone is 10
		[][]float64{e}, [][]float64{l},
		[]DelayPiece{{Slope: 0, Threshold: 0}},
		DefaultParams(),
	)
	require.NoError(t, err)
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0})
	require.NoError(t, err)
	assert.True(t, sol.Infeasible)
}

func TestConstruct_IsDeterministicAcrossRepeatedCalls(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	first, err := sched.Construct([]float64{0, 0})
	require.NoError(t, err)
	second, err := sched.Construct([]float64{0, 0})
	require.NoError(t, err)

	assert.Equal(t, first.Arrival(0), second.Arrival(0))
	assert.Equal(t, first.Arrival(1), second.Arrival(1))
}
