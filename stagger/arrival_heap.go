package stagger

import "container/heap"

// arrivalHeap is a reusable min-heap of arrival times for one arc, used by
// the forward simulator to compute the flow a newly-departing trip finds on
// an arc: every arrival at or before the departing trip's own departure
// time represents a trip that has already left the arc for good, so it is
// drained (permanently removed) rather than merely peeked; whatever
// remains is still occupying the arc.
type arrivalHeap []float64

func (h arrivalHeap) Len() int            { return len(h) }
func (h arrivalHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h arrivalHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *arrivalHeap) Push(x any)         { *h = append(*h, x.(float64)) }
func (h *arrivalHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

func (h *arrivalHeap) reset() { *h = (*h)[:0] }

// drain removes and counts every arrival at or before threshold, returning
// the number of trips still occupying the arc afterward (i.e. flow - 1).
func (h *arrivalHeap) drain(threshold float64) int {
	for h.Len() > 0 && (*h)[0] <= threshold {
		heap.Pop(h)
	}
	return h.Len()
}

func (h *arrivalHeap) push(v float64) { heap.Push(h, v) }
