package stagger

// DelayPiece is one segment of the piecewise-linear arc delay shape, shared
// across every non-dummy arc: Slope and Threshold are both expressed as
// fractions relative to an arc's own capacity and travel time. Pieces must
// be supplied in ascending Threshold order.
type DelayPiece struct {
	Slope     float64
	Threshold float64
}

// delay computes delay(v, a): the additional travel time an arc imposes
// when v trips occupy it simultaneously.
//
// delay(v,a) = max over pieces i of H_i + slope_i * T(a)/C(a) * max(0, v - threshold_i*C(a))
//
// where H_i is the cumulative height at the start of piece i: H_0 = 0, and
// H_{i+1} = H_i + slope_i*T(a)/C(a) * (threshold_{i+1} - threshold_i)*C(a).
// Arc 0, the dummy sentinel, always returns 0. The result is monotone
// non-decreasing in v because each piece's contribution is non-negative and
// non-decreasing, and the running height only climbs.
func (inst *Instance) delay(v float64, a ArcID) float64 {
	if a == DummyArc {
		return 0
	}
	T := inst.travelTime[a]
	C := inst.capacity[a]
	var height, maxDelay float64
	for i, piece := range inst.pieces {
		thresholdCap := piece.Threshold * C
		slope := T * piece.Slope / C
		d := height
		if v > thresholdCap {
			d = height + slope*(v-thresholdCap)
		}
		if d > maxDelay {
			maxDelay = d
		}
		if i+1 < len(inst.pieces) {
			next := inst.pieces[i+1]
			height += slope * (next.Threshold*C - thresholdCap)
		}
	}
	return maxDelay
}
