package stagger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ZeroBudgetSkipsLocalSearch(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams()) // MaxTimeOptimization defaults to 0
	sched := NewScheduler(inst)

	startTimes := []float64{0, 50}
	remainingSlack := []float64{1e9, 1e9 - 50}
	staggeringApplied := []float64{0, 50}

	sol, stats, err := sched.Run(startTimes, remainingSlack, staggeringApplied)
	require.NoError(t, err)
	require.False(t, sol.Infeasible)
	assert.Equal(t, 0, stats.AcceptedMoves)
	assert.InDelta(t, 0, sol.TotalDelay(), 1e-9)
}

func TestRun_RejectsMismatchedSlackPrecondition(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	_, _, err := sched.Run([]float64{0, 0}, []float64{1, 1}, []float64{0, 0})
	require.Error(t, err)
}

func TestRun_StaggersCongestedPairToZeroDelay(t *testing.T) {
	params := NewParams(WithMaxTimeOptimization(time.Second))
	inst := twoTripOneArcInstance(t, params)
	sched := NewScheduler(inst)

	startTimes := []float64{0, 0}
	remainingSlack := []float64{1e9, 1e9}
	staggeringApplied := []float64{0, 0}

	sol, stats, err := sched.Run(startTimes, remainingSlack, staggeringApplied)
	require.NoError(t, err)
	require.False(t, sol.Infeasible)
	require.False(t, sol.HasTies)

	assert.InDelta(t, 0, sol.TotalDelay(), 1e-6)
	assert.GreaterOrEqual(t, stats.AcceptedMoves, 1)
}

func TestFindConflicts_SortedByDescendingDelayThenTripID(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0, 0})
	require.NoError(t, err)

	conflicts := sched.FindConflicts(sol)
	require.NotEmpty(t, conflicts)
	for i := 1; i < len(conflicts); i++ {
		prev, cur := conflicts[i-1], conflicts[i]
		assert.True(t, prev.Delay > cur.Delay || (prev.Delay == cur.Delay && prev.Current >= cur.Current))
	}
}

func TestScanConflictsParallel_MatchesSequentialScan(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	sched := NewScheduler(inst)

	sol, err := sched.Construct([]float64{0, 0})
	require.NoError(t, err)

	sequential := sched.FindConflicts(sol)
	parallel, err := sched.ScanConflictsParallel(t.Context(), sol, 0)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}
