package stagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelay_PiecewiseLinear(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())

	cases := []struct {
		name string
		flow float64
		want float64
	}{
		{"below capacity", 0, 0},
		{"at capacity", 1, 0},
		{"one over capacity", 2, 10},
		{"two over capacity", 3, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inst.delay(tc.flow, ArcID(1))
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestDelay_DummyArcAlwaysZero(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	assert.Equal(t, 0.0, inst.delay(1000, DummyArc))
}

func TestDelay_MonotoneNonDecreasing(t *testing.T) {
	inst := twoTripOneArcInstance(t, DefaultParams())
	prev := inst.delay(0, ArcID(1))
	for v := 1.0; v <= 10; v++ {
		cur := inst.delay(v, ArcID(1))
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}
