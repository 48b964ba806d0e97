package stagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasTies_DetectsNearSimultaneousDepartures(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0, 0.0001}) // well within TieTolerance (1e-3)
	require.NoError(t, err)
	require.False(t, sol.Infeasible)

	assert.True(t, sched.HasTies(sol))
}

func TestHasTies_FalseWhenWellSeparated(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0, 50})
	require.NoError(t, err)
	require.False(t, sol.Infeasible)

	assert.False(t, sched.HasTies(sol))
}

func TestResolveTies_NudgesUntilTieFree(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0, 0.0001})
	require.NoError(t, err)
	require.True(t, sched.HasTies(sol))
	originalStart0 := sol.StartTime(0)

	resolved, err := sched.ResolveTies(sol)
	require.NoError(t, err)
	require.False(t, resolved.Infeasible)
	assert.False(t, resolved.HasTies)
	assert.False(t, sched.HasTies(resolved))

	// The lower-id trip should have been nudged forward at least once;
	// its start time must strictly exceed its original value.
	assert.Greater(t, resolved.StartTime(0), originalStart0)
}

func TestResolveTies_NoOpWhenAlreadyTieFree(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0, 50})
	require.NoError(t, err)
	before := sol.StartTimes()

	resolved, err := sched.ResolveTies(sol)
	require.NoError(t, err)
	assert.False(t, resolved.HasTies)
	assert.Equal(t, before[0], resolved.StartTime(0))
	assert.Equal(t, before[1], resolved.StartTime(1))
}
