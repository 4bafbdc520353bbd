// Package pq is a generic minimum-priority queue backed by container/heap.
//
// It backs the PIT expiration wheel (engine.TimerWheel): entries are
// ordered by their expiration deadline so the next timer to fire is always
// at the root.
package pq

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

// Item is a value with an associated priority, tracking its own position
// in the queue so its priority can be updated or the item removed in
// O(log n) instead of a linear scan.
type Item[V any, P constraints.Ordered] struct {
	value    V
	priority P
	index    int
}

// Value returns the item's stored value.
func (it *Item[V, P]) Value() V {
	return it.value
}

// Priority returns the item's current priority.
func (it *Item[V, P]) Priority() P {
	return it.priority
}

type heapData[V any, P constraints.Ordered] []*Item[V, P]

// Len returns the number of items in the underlying heap storage.
func (h heapData[V, P]) Len() int { return len(h) }

// Less reports whether the item at i has a smaller priority than at j, giving a min-heap.
func (h heapData[V, P]) Less(i, j int) bool { return h[i].priority < h[j].priority }

// Swap exchanges the items at i and j and keeps their index fields in sync.
func (h heapData[V, P]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

// Push appends x, which must be a *Item[V, P], recording its heap index.
func (h *heapData[V, P]) Push(x any) {
	it := x.(*Item[V, P])
	it.index = len(*h)
	*h = append(*h, it)
}

// Pop removes and returns the last element of the backing slice.
func (h *heapData[V, P]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// Queue is a minimum-priority queue of values of type V ordered by P.
type Queue[V any, P constraints.Ordered] struct {
	data heapData[V, P]
}

// New constructs an empty Queue.
func New[V any, P constraints.Ordered]() *Queue[V, P] {
	return &Queue[V, P]{}
}

// Len returns the number of items in the queue.
func (q *Queue[V, P]) Len() int {
	return q.data.Len()
}

// Push inserts value with the given priority and returns a handle that can
// later be used with Remove or UpdatePriority.
func (q *Queue[V, P]) Push(value V, priority P) *Item[V, P] {
	it := &Item[V, P]{value: value, priority: priority}
	heap.Push(&q.data, it)
	return it
}

// Peek returns the minimum-priority value without removing it.
func (q *Queue[V, P]) Peek() (V, bool) {
	if q.data.Len() == 0 {
		var zero V
		return zero, false
	}
	return q.data[0].value, true
}

// PeekPriority returns the minimum priority currently in the queue.
func (q *Queue[V, P]) PeekPriority() (P, bool) {
	if q.data.Len() == 0 {
		var zero P
		return zero, false
	}
	return q.data[0].priority, true
}

// Pop removes and returns the minimum-priority value.
func (q *Queue[V, P]) Pop() (V, bool) {
	if q.data.Len() == 0 {
		var zero V
		return zero, false
	}
	return heap.Pop(&q.data).(*Item[V, P]).value, true
}

// Remove removes an arbitrary item previously returned by Push, wherever it
// currently sits in the heap.
func (q *Queue[V, P]) Remove(it *Item[V, P]) {
	if it.index < 0 || it.index >= q.data.Len() {
		return
	}
	heap.Remove(&q.data, it.index)
}

// UpdatePriority changes an item's priority and restores heap order.
func (q *Queue[V, P]) UpdatePriority(it *Item[V, P], priority P) {
	it.priority = priority
	heap.Fix(&q.data, it.index)
}
