package stagger

import "container/heap"

// eventType distinguishes the two kinds of queue entries the incremental
// re-evaluator processes. The forward simulator only ever sees travel.
type eventType uint8

const (
	eventTravel eventType = iota
	eventActivation
)

// departure is one entry in the event priority queue: a trip's scheduled
// departure from a position in its route (travel), or a pending promotion
// of a STAGING trip to ACTIVE (activation).
type departure struct {
	time        float64
	arc         ArcID
	trip        TripID
	position    int
	typ         eventType
	reinsertion int
}

// departureHeap is a container/heap.Interface min-heap of departures,
// totally ordered by (time, arc_id, trip_id): the ordering the marking
// rules depend on for determinism. It is reused across Construct/re-evaluate
// invocations; reset() clears it in place rather than reallocating.
type departureHeap []departure

func (h departureHeap) Len() int { return len(h) }

func (h departureHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.time != b.time {
		return a.time < b.time
	}
	if a.arc != b.arc {
		return a.arc < b.arc
	}
	return a.trip < b.trip
}

func (h departureHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *departureHeap) Push(x any) {
	*h = append(*h, x.(departure))
}

func (h *departureHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (h *departureHeap) reset() {
	*h = (*h)[:0]
}

func (h *departureHeap) push(d departure) {
	heap.Push(h, d)
}

func (h *departureHeap) pop() (departure, bool) {
	if h.Len() == 0 {
		return departure{}, false
	}
	return heap.Pop(h).(departure), true
}
