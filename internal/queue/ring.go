package queue

import (
	"fmt"
	"iter"
)

// RingQueue is an unbounded FIFO queue backed by one contiguous ring buffer.
//
// When the buffer is full, Enqueue allocates a buffer of twice the capacity
// and copies the occupied slots into it starting at slot 0, oldest first.
// Enqueue and Dequeue are amortized O(1); Get and Set are O(1).
//
// WARNING: RingQueue is NOT safe for concurrent use.
type RingQueue[T any] struct {
	buf   []T
	mask  int // len(buf)-1, len(buf) is a power of two
	head  int // slot of logical index 0
	count int

	max  int
	host Host[T]
}

// NewRing creates an empty RingQueue.
// The initial capacity defaults to DefaultCapacity and is rounded up to a
// power of two, or down when it would exceed WithMaxCapacity.
func NewRing[T any](opts ...Option[T]) *RingQueue[T] {
	c := newConfig(opts)

	n := c.capacity
	if n > maxSlots {
		n = maxSlots
	}
	n = roundUpPow2(n)
	if c.max > 0 && n > c.max {
		n = roundDownPow2(c.max)
	}

	return &RingQueue[T]{
		buf:  make([]T, n),
		mask: n - 1,
		max:  c.max,
		host: c.host,
	}
}

// Len returns the number of stored elements.
func (q *RingQueue[T]) Len() int {
	return q.count
}

// Cap returns the current capacity of the backing buffer.
func (q *RingQueue[T]) Cap() int {
	return len(q.buf)
}

// IsEmpty reports whether the queue holds no elements.
func (q *RingQueue[T]) IsEmpty() bool {
	return q.count == 0
}

func (q *RingQueue[T]) slot(i int) int {
	return (q.head + i) & q.mask
}

// grow doubles the buffer until it holds at least need slots.
// On failure the current buffer is untouched.
func (q *RingQueue[T]) grow(need int) error {
	n := len(q.buf)
	for n < need {
		if n >= maxSlots {
			return fmt.Errorf("%w: need %d slots", ErrAllocationFailure, need)
		}
		n <<= 1
	}
	if n == len(q.buf) {
		return nil
	}
	if q.max > 0 && n > q.max {
		return fmt.Errorf("%w: capacity %d exceeds limit %d", ErrAllocationFailure, n, q.max)
	}

	buf, err := allocSlots[T](n)
	if err != nil {
		return err
	}

	// Re-linearize: oldest element lands in slot 0.
	if q.head+q.count <= len(q.buf) {
		copy(buf, q.buf[q.head:q.head+q.count])
	} else {
		k := copy(buf, q.buf[q.head:])
		copy(buf[k:], q.buf[:q.slot(q.count)])
	}

	q.buf = buf
	q.mask = n - 1
	q.head = 0
	return nil
}

// Enqueue appends v. If the buffer is full it doubles first; if that fails
// the queue is unchanged and ErrAllocationFailure is returned.
func (q *RingQueue[T]) Enqueue(v T) error {
	if q.host.IsNone(v) {
		return nil
	}
	if q.count == len(q.buf) {
		if err := q.grow(q.count + 1); err != nil {
			return err
		}
	}

	q.host.Acquire(v)
	q.buf[q.slot(q.count)] = v
	q.count++
	return nil
}

// Dequeue removes and returns the oldest element.
// The queue's reference moves to the caller.
func (q *RingQueue[T]) Dequeue() (T, error) {
	var zero T
	if q.count == 0 {
		return zero, ErrEmptyQueue
	}

	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) & q.mask
	q.count--
	return v, nil
}

// Get returns the element at logical index i. The reference is borrowed.
func (q *RingQueue[T]) Get(i int) (T, error) {
	i, err := normalizeIndex(i, q.count)
	if err != nil {
		var zero T
		return zero, err
	}
	return q.buf[q.slot(i)], nil
}

// Set replaces the element at logical index i, releasing the old one.
func (q *RingQueue[T]) Set(i int, v T) error {
	i, err := normalizeIndex(i, q.count)
	if err != nil {
		return err
	}

	s := q.slot(i)
	old := q.buf[s]
	q.host.Acquire(v)
	q.buf[s] = v
	q.host.Release(old)
	return nil
}

// Contains reports whether any element equals v according to the host.
func (q *RingQueue[T]) Contains(v T) bool {
	for i := 0; i < q.count; i++ {
		if q.host.Equal(v, q.buf[q.slot(i)]) {
			return true
		}
	}
	return false
}

// Extend enqueues values in order. Capacity is reserved once for the values
// that will be stored (None values are skipped), so either every value is
// accepted or, on ErrAllocationFailure, none is.
func (q *RingQueue[T]) Extend(values ...T) error {
	n := storable(q.host, values)
	if n == 0 {
		return nil
	}
	if err := q.grow(q.count + n); err != nil {
		return err
	}
	for _, v := range values {
		if err := q.Enqueue(v); err != nil {
			return err
		}
	}
	return nil
}

// ExtendSeq enqueues every value produced by seq. It never pre-sizes: the
// buffer doubles as needed while seq runs.
func (q *RingQueue[T]) ExtendSeq(seq iter.Seq[T]) error {
	return enqueueSeq(seq, q.Enqueue)
}

// Copy returns a structurally independent queue holding the same elements.
// Each element gets one more reference on behalf of the copy.
func (q *RingQueue[T]) Copy() (*RingQueue[T], error) {
	buf, err := allocSlots[T](len(q.buf))
	if err != nil {
		return nil, err
	}
	copy(buf, q.buf)
	for i := 0; i < q.count; i++ {
		q.host.Acquire(buf[q.slot(i)])
	}

	return &RingQueue[T]{
		buf:   buf,
		mask:  q.mask,
		head:  q.head,
		count: q.count,
		max:   q.max,
		host:  q.host,
	}, nil
}

// Clear releases every element and resets the queue to empty.
// Capacity is kept. Clearing an empty queue is a no-op.
func (q *RingQueue[T]) Clear() {
	var zero T
	head, n := q.head, q.count
	q.head, q.count = 0, 0
	for i := 0; i < n; i++ {
		s := (head + i) & q.mask
		v := q.buf[s]
		q.buf[s] = zero
		q.host.Release(v)
	}
}

// Traverse calls visit for every element, oldest first.
// visit must not modify the queue.
func (q *RingQueue[T]) Traverse(visit func(T) error) error {
	for i := 0; i < q.count; i++ {
		if err := visit(q.buf[q.slot(i)]); err != nil {
			return err
		}
	}
	return nil
}
