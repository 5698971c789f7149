// Package queue provides the priority queue used by layer search: one
// instance as a min-heap over candidates to expand, another as a max-heap
// bounding the current best results to size ef.
package queue

import "container/heap"

// Compile-time check that PriorityQueue satisfies heap.Interface.
var _ heap.Interface = (*PriorityQueue)(nil)

// Item is an entry in the priority queue: a node identifier within some
// layer and its distance to the query driving the current search.
type Item struct {
	Node     uint64  // Node is the within-layer node identifier.
	Distance float64 // Distance is the priority of the item in the queue.
	index    int     // index is maintained by the heap.Interface methods.
}

// PriorityQueue implements heap.Interface over Items.
//
// Descending selects a max-heap (the largest distance sorts first, as used
// for the bounded result set in layer search); ascending (the default,
// Descending == false) selects a min-heap (the smallest distance sorts
// first, as used for the candidate frontier).
type PriorityQueue struct {
	Descending bool
	Items      []*Item
}

// New creates an empty, heap-initialized PriorityQueue.
func New(descending bool) *PriorityQueue {
	pq := &PriorityQueue{Descending: descending}
	heap.Init(pq)
	return pq
}

// Len returns the number of items in the queue.
func (pq *PriorityQueue) Len() int { return len(pq.Items) }

// Less reports whether the element at i should sort before the element at j.
func (pq *PriorityQueue) Less(i, j int) bool {
	if pq.Descending {
		return pq.Items[i].Distance > pq.Items[j].Distance
	}
	return pq.Items[i].Distance < pq.Items[j].Distance
}

// Swap swaps the elements at i and j.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.Items[i], pq.Items[j] = pq.Items[j], pq.Items[i]
	pq.Items[i].index, pq.Items[j].index = i, j
}

// Push adds x to the queue. x must be a *Item; use heap.Push to call this.
func (pq *PriorityQueue) Push(x any) {
	item := x.(*Item)
	item.index = len(pq.Items)
	pq.Items = append(pq.Items, item)
}

// Pop removes and returns the top element. Use heap.Pop to call this.
func (pq *PriorityQueue) Pop() any {
	old := pq.Items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	pq.Items = old[:n-1]
	return item
}

// Top returns the top element without removing it. Callers must check
// Len() > 0 first.
func (pq *PriorityQueue) Top() *Item {
	return pq.Items[0]
}
