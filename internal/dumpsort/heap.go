package dumpsort

import "container/heap"

// indexHeap is a max-heap of input-array indices, used by the
// topological sort to always pick the highest-input-index candidate
// whose before-constraints have reached zero. A plain slice of ints
// plus container/heap is all the design calls for (design note:
// "A straightforward max-heap of integers suffices").
type indexHeap []int

func (h indexHeap) Len() int            { return len(h) }
func (h indexHeap) Less(i, j int) bool  { return h[i] > h[j] } // max-heap
func (h indexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)         { *h = append(*h, x.(int)) }
func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newIndexHeap(seed []int) *indexHeap {
	h := indexHeap(seed)
	heap.Init(&h)
	return &h
}

func (h *indexHeap) pushIndex(i int) { heap.Push(h, i) }

func (h *indexHeap) popMax() int { return heap.Pop(h).(int) }
