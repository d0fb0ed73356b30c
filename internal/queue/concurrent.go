package queue

import (
	"iter"
	"sync"
)

// ConcurrentQueue is a SegmentedQueue guarded by a single mutex.
//
// Every method holds the lock for its entire duration and releases it on
// every return path, so no two operations on the same queue ever interleave.
// There is no reader/writer split, no fairness guarantee beyond sync.Mutex,
// and no blocking wait for items: Dequeue on an empty queue fails at once.
//
// Callbacks passed to ExtendSeq and Traverse run with the lock held and must
// not call back into the same queue.
type ConcurrentQueue[T any] struct {
	mu sync.Mutex
	q  *SegmentedQueue[T]
}

// NewConcurrent creates an empty ConcurrentQueue.
func NewConcurrent[T any](opts ...Option[T]) *ConcurrentQueue[T] {
	return &ConcurrentQueue[T]{q: NewSegmented(opts...)}
}

// Enqueue appends v.
func (c *ConcurrentQueue[T]) Enqueue(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Enqueue(v)
}

// Dequeue removes and returns the oldest element, or ErrEmptyQueue.
func (c *ConcurrentQueue[T]) Dequeue() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Dequeue()
}

// TryDequeue removes and returns the oldest element.
// Returns false if the queue is empty.
func (c *ConcurrentQueue[T]) TryDequeue() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.q.IsEmpty() {
		var zero T
		return zero, false
	}
	v, err := c.q.Dequeue()
	return v, err == nil
}

// Poll checks for an element and dequeues it in one critical section.
// It returns the host's None value instead of failing when the queue is empty.
func (c *ConcurrentQueue[T]) Poll() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.q.IsEmpty() {
		return c.q.host.None()
	}
	v, _ := c.q.Dequeue()
	return v
}

// Len returns the number of stored elements.
func (c *ConcurrentQueue[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Len()
}

// IsEmpty reports whether the queue holds no elements.
func (c *ConcurrentQueue[T]) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.IsEmpty()
}

// Get returns the element at logical index i.
func (c *ConcurrentQueue[T]) Get(i int) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Get(i)
}

// Set replaces the element at logical index i.
func (c *ConcurrentQueue[T]) Set(i int, v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Set(i, v)
}

// Contains reports whether any element equals v.
func (c *ConcurrentQueue[T]) Contains(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Contains(v)
}

// Extend enqueues values as one critical section.
func (c *ConcurrentQueue[T]) Extend(values ...T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Extend(values...)
}

// ExtendSeq enqueues every value produced by seq as one critical section.
func (c *ConcurrentQueue[T]) ExtendSeq(seq iter.Seq[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.ExtendSeq(seq)
}

// Copy returns an independent ConcurrentQueue with its own lock holding the
// same elements.
func (c *ConcurrentQueue[T]) Copy() (*ConcurrentQueue[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, err := c.q.Copy()
	if err != nil {
		return nil, err
	}
	return &ConcurrentQueue[T]{q: q}, nil
}

// Clear releases every element and resets the queue to empty.
func (c *ConcurrentQueue[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q.Clear()
}

// Traverse calls visit for every element, oldest first, under the lock.
func (c *ConcurrentQueue[T]) Traverse(visit func(T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Traverse(visit)
}
