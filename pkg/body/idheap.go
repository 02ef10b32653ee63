package body

import "container/heap"

// idHeap is a min-heap of freed body ids, used so Manager.CreateBody can
// assign the lowest unused non-negative id in O(log n) instead of
// scanning the full id space.
type idHeap []int

func (h idHeap) Len() int            { return len(h) }
func (h idHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *idHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

var _ = heap.Interface(&idHeap{})
