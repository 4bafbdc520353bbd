// Package mailbox is a bounded, single-consumer/multi-producer message
// queue: the forwarder context's inbox. Producers (network faces,
// application faces, the timer wheel) call TrySend; the forwarder goroutine
// is the sole caller of Receive.
//
// The lock-free linked-list core is adapted from the teacher's
// std/types/lockfree.Queue; a bounded size counter and a notify channel are
// layered on top so TrySend can report "mailbox full" (spec.md §7) and
// Receive can block without spinning.
package mailbox

import "sync/atomic"

type node[T any] struct {
	val  T
	next atomic.Pointer[node[T]]
}

// Mailbox is a bounded FIFO queue of messages of type T.
type Mailbox[T any] struct {
	head     *node[T]
	tail     atomic.Pointer[node[T]]
	size     atomic.Int32
	capacity int32
	notify   chan struct{}
}

// New constructs a Mailbox that refuses sends once it holds capacity
// messages. capacity <= 0 means unbounded.
func New[T any](capacity int) *Mailbox[T] {
	head := &node[T]{}
	mb := &Mailbox[T]{
		head:     head,
		capacity: int32(capacity),
		notify:   make(chan struct{}, 1),
	}
	mb.tail.Store(head)
	return mb
}

// TrySend enqueues msg and reports true, or reports false without blocking
// if the mailbox is at capacity.
func (mb *Mailbox[T]) TrySend(msg T) bool {
	if mb.capacity > 0 && mb.size.Load() >= mb.capacity {
		return false
	}
	n := &node[T]{val: msg}
	for {
		tail := mb.tail.Load()
		if mb.tail.CompareAndSwap(tail, n) {
			tail.next.Store(n)
			break
		}
	}
	if mb.size.Add(1) == 1 {
		select {
		case mb.notify <- struct{}{}:
		default:
		}
	}
	return true
}

// tryPop removes and returns the head message without blocking.
func (mb *Mailbox[T]) tryPop() (T, bool) {
	for {
		sz := mb.size.Load()
		if sz <= 0 {
			var zero T
			return zero, false
		}
		next := mb.head.next.Load()
		if next == nil {
			// a push is in flight; spin briefly until it links in
			continue
		}
		mb.head = next
		mb.size.Add(-1)
		return next.val, true
	}
}

// Receive blocks until a message is available and returns it. It is meant
// to be called from a single consumer goroutine (the forwarder context).
func (mb *Mailbox[T]) Receive() T {
	for {
		if v, ok := mb.tryPop(); ok {
			return v
		}
		<-mb.notify
	}
}

// TryReceive returns the head message without blocking, or false if empty.
func (mb *Mailbox[T]) TryReceive() (T, bool) {
	return mb.tryPop()
}

// Len returns the approximate number of queued messages.
func (mb *Mailbox[T]) Len() int {
	return int(mb.size.Load())
}
