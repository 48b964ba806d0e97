package stagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstance_RejectsRouteWithoutDummySentinel(t *testing.T) {
	e, l := wideBounds(1)
	_, err := NewInstance(
		[][]ArcID{{1}},
		[]float64{0, 10}, []float64{0, 1},
		[]float64{0}, []float64{100},
		[][]float64{e}, [][]float64{l},
		nil, DefaultParams(),
	)
	require.Error(t, err)
}

func TestNewInstance_RejectsEarliestAfterLatest(t *testing.T) {
	_, err := NewInstance(
		[][]ArcID{{1, 0}},
		[]float64{0, 10}, []float64{0, 1},
		[]float64{0}, []float64{100},
		[][]float64{{5, 0}}, [][]float64{{0, 100}},
		nil, DefaultParams(),
	)
	require.Error(t, err)
}

func TestNewInstance_RejectsUnsortedPieces(t *testing.T) {
	e, l := wideBounds(2)
	_, err := NewInstance(
		[][]ArcID{{1, 0}},
		[]float64{0, 10}, []float64{0, 1},
		[]float64{0}, []float64{100},
		[][]float64{e}, [][]float64{l},
		[]DelayPiece{{Slope: 1, Threshold: 1}, {Slope: 1, Threshold: 0}},
		DefaultParams(),
	)
	require.Error(t, err)
}

func TestNewInstance_RejectsInvalidParams(t *testing.T) {
	e, l := wideBounds(2)
	params := DefaultParams()
	params.TieTolerance = 0
	_, err := NewInstance(
		[][]ArcID{{1, 0}},
		[]float64{0, 10}, []float64{0, 1},
		[]float64{0}, []float64{100},
		[][]float64{e}, [][]float64{l},
		nil, params,
	)
	require.Error(t, err)
}

func TestNewInstance_PopulatesConflictingSetsSortedByEarliestDeparture(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	set := inst.ConflictingSet(ArcID(1))
	require.Len(t, set, 2)
	assert.Equal(t, TripID(0), set[0])
	assert.Equal(t, TripID(1), set[1])
}

func TestNewInstance_WithConflictingSetsOverridesComputedOnes(t *testing.T) {
	e, l := wideBounds(2)
	routes := [][]ArcID{{1, 0}, {1, 0}}
	inst, err := NewInstance(
		routes,
		[]float64{0, 10}, []float64{0, 5},
		[]float64{0, 0}, []float64{1000, 1000},
		[][]float64{e, e}, [][]float64{l, l},
		[]DelayPiece{{Slope: 0, Threshold: 0}},
		DefaultParams(),
		WithConflictingSets([][]TripID{nil, {1, 0}}),
	)
	require.NoError(t, err)
	assert.Equal(t, []TripID{1, 0}, inst.ConflictingSet(ArcID(1)))
}

func TestInstance_ConflictingUpTo_MatchesFullSetPrefix(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	full := inst.ConflictingSet(ArcID(1))
	got := inst.ConflictingUpTo(ArcID(1), 1e9)
	assert.Equal(t, full, got)
	assert.Empty(t, inst.ConflictingUpTo(ArcID(1), -1e9-1))
}
