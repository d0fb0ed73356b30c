// Package queue provides FIFO queue implementations for a managed-object host.
//
// This package offers three implementations of the Queue interface:
//   - RingQueue: a single contiguous ring buffer that doubles on overflow
//   - SegmentedQueue: a forward-linked chain of fixed 256-slot ring segments
//   - ConcurrentQueue: a SegmentedQueue guarded by one mutex
//
// # Ownership
//
// Elements are handed to the queue through a Host. The queue acquires one
// reference per stored element and releases it when the element is
// overwritten, cleared or the queue is cleared. Dequeue transfers the queue's
// reference to the caller. Get returns a borrowed reference.
//
// # Concurrency (IMPORTANT)
//
// RingQueue and SegmentedQueue carry no internal synchronization. Sharing one
// between goroutines without external locking is a data race.
// ConcurrentQueue serializes every operation behind a single mutex.
package queue

import "iter"

// Queue is a FIFO queue with indexed access.
//
// Index 0 is the oldest element (the next one Dequeue returns). Negative
// indexes count back from the newest element.
type Queue[T any] interface {
	// Enqueue appends v at the back of the queue.
	// Values the host reports as None are silently ignored.
	Enqueue(v T) error

	// Dequeue removes and returns the oldest element.
	// Returns ErrEmptyQueue if the queue is empty.
	Dequeue() (T, error)

	// Len returns the number of stored elements.
	Len() int

	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool

	// Get returns the element at logical index i.
	Get(i int) (T, error)

	// Set replaces the element at logical index i.
	Set(i int, v T) error

	// Contains reports whether any stored element equals v.
	Contains(v T) bool

	// Extend enqueues values in order, reserving capacity once up front.
	Extend(values ...T) error

	// ExtendSeq enqueues every value produced by seq in order.
	ExtendSeq(seq iter.Seq[T]) error

	// Clear releases every stored element and resets the queue to empty.
	Clear()

	// Traverse calls visit for every stored element, oldest first,
	// stopping at the first non-nil error.
	Traverse(visit func(T) error) error
}

// DefaultCapacity is the initial RingQueue capacity when none is configured.
const DefaultCapacity = 1024

// SegmentSize is the number of slots in each SegmentedQueue segment.
const SegmentSize = 256

var (
	_ Queue[any] = (*RingQueue[any])(nil)
	_ Queue[any] = (*SegmentedQueue[any])(nil)
	_ Queue[any] = (*ConcurrentQueue[any])(nil)
)
