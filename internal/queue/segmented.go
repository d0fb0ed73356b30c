package queue

import (
	"fmt"
	"iter"
)

// SegmentedQueue is an unbounded FIFO queue backed by a forward-linked chain
// of SegmentSize-slot ring segments.
//
// Growing never copies existing elements: a full tail gets a fresh segment
// linked after it, and a drained head segment is unlinked and dropped.
// Get and Set walk the chain, so they cost O(n/SegmentSize) in the worst case
// in exchange for never paying a single large reallocation.
//
// Only the head segment can be partially drained and only the tail segment
// can be partially filled; every segment in between is full.
//
// WARNING: SegmentedQueue is NOT safe for concurrent use. See ConcurrentQueue.
type SegmentedQueue[T any] struct {
	head     *segment[T]
	tail     *segment[T]
	length   int
	segments int

	max  int
	host Host[T]
}

// NewSegmented creates an empty SegmentedQueue. No segment is allocated until
// the first Enqueue. WithMaxCapacity bounds the total number of segment slots.
func NewSegmented[T any](opts ...Option[T]) *SegmentedQueue[T] {
	c := newConfig(opts)
	return &SegmentedQueue[T]{
		max:  c.max,
		host: c.host,
	}
}

// Len returns the number of stored elements.
func (q *SegmentedQueue[T]) Len() int {
	return q.length
}

// IsEmpty reports whether the queue holds no elements.
func (q *SegmentedQueue[T]) IsEmpty() bool {
	return q.length == 0
}

// Segments returns the number of segments currently linked.
func (q *SegmentedQueue[T]) Segments() int {
	return q.segments
}

func (q *SegmentedQueue[T]) checkBudget(extra int) error {
	if q.max > 0 && (q.segments+extra)*SegmentSize > q.max {
		return fmt.Errorf("%w: %d segments exceed limit of %d slots",
			ErrAllocationFailure, q.segments+extra, q.max)
	}
	return nil
}

// link appends a fresh segment and makes it the tail.
func (q *SegmentedQueue[T]) link() error {
	if err := q.checkBudget(1); err != nil {
		return err
	}
	s, err := newSegment[T]()
	if err != nil {
		return err
	}

	if q.tail == nil {
		q.head = s
	} else {
		q.tail.next = s
	}
	q.tail = s
	q.segments++
	return nil
}

// Enqueue appends v, linking a new tail segment when the current one is full.
func (q *SegmentedQueue[T]) Enqueue(v T) error {
	if q.host.IsNone(v) {
		return nil
	}
	if q.tail == nil || q.tail.full() {
		if err := q.link(); err != nil {
			return err
		}
	}

	q.host.Acquire(v)
	q.tail.put(v)
	q.length++
	return nil
}

// Dequeue removes and returns the oldest element.
// The queue's reference moves to the caller.
func (q *SegmentedQueue[T]) Dequeue() (T, error) {
	if q.length == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}

	h := q.head
	v := h.take()
	q.length--

	if h.count == 0 {
		q.head = h.next
		h.next = nil
		q.segments--
		if q.head == nil {
			q.tail = nil
		}
	}
	return v, nil
}

// locate finds the segment and slot of a normalized index.
func (q *SegmentedQueue[T]) locate(i int) (*segment[T], int) {
	s := q.head
	if i < s.count {
		return s, s.slot(i)
	}

	i -= s.count
	s = s.next
	for hops := i / SegmentSize; hops > 0; hops-- {
		s = s.next
	}
	return s, s.slot(i & segmentMask)
}

// Get returns the element at logical index i. The reference is borrowed.
func (q *SegmentedQueue[T]) Get(i int) (T, error) {
	i, err := normalizeIndex(i, q.length)
	if err != nil {
		var zero T
		return zero, err
	}
	s, k := q.locate(i)
	return s.slots[k], nil
}

// Set replaces the element at logical index i, releasing the old one.
func (q *SegmentedQueue[T]) Set(i int, v T) error {
	i, err := normalizeIndex(i, q.length)
	if err != nil {
		return err
	}

	s, k := q.locate(i)
	old := s.slots[k]
	q.host.Acquire(v)
	s.slots[k] = v
	q.host.Release(old)
	return nil
}

// Contains reports whether any element equals v according to the host.
func (q *SegmentedQueue[T]) Contains(v T) bool {
	for s := q.head; s != nil; s = s.next {
		for i := 0; i < s.count; i++ {
			if q.host.Equal(v, s.slots[s.slot(i)]) {
				return true
			}
		}
	}
	return false
}

// Extend enqueues values in order. The segment budget for the values that will
// be stored is checked up front, so a WithMaxCapacity overflow rejects the
// whole batch.
func (q *SegmentedQueue[T]) Extend(values ...T) error {
	n := storable(q.host, values)
	if n == 0 {
		return nil
	}

	spare := 0
	if q.tail != nil {
		spare = SegmentSize - q.tail.count
	}
	if extra := n - spare; extra > 0 {
		if err := q.checkBudget((extra + SegmentSize - 1) / SegmentSize); err != nil {
			return err
		}
	}

	for _, v := range values {
		if err := q.Enqueue(v); err != nil {
			return err
		}
	}
	return nil
}

// ExtendSeq enqueues every value produced by seq.
func (q *SegmentedQueue[T]) ExtendSeq(seq iter.Seq[T]) error {
	return enqueueSeq(seq, q.Enqueue)
}

// Copy returns a structurally independent queue holding the same elements,
// cloned segment by segment. Each element gets one more reference.
func (q *SegmentedQueue[T]) Copy() (*SegmentedQueue[T], error) {
	c := &SegmentedQueue[T]{max: q.max, host: q.host}

	for s := q.head; s != nil; s = s.next {
		n, err := s.clone()
		if err != nil {
			return nil, err
		}
		if c.tail == nil {
			c.head = n
		} else {
			c.tail.next = n
		}
		c.tail = n
		c.segments++
	}

	// Acquire only once every segment is in place, so a failed clone
	// leaves reference counts untouched.
	for s := c.head; s != nil; s = s.next {
		for i := 0; i < s.count; i++ {
			q.host.Acquire(s.slots[s.slot(i)])
		}
	}
	c.length = q.length
	return c, nil
}

// Clear releases every element, drops every segment and resets the queue to
// empty. Clearing an empty queue is a no-op.
func (q *SegmentedQueue[T]) Clear() {
	s := q.head
	q.head, q.tail = nil, nil
	q.length, q.segments = 0, 0

	var zero T
	for s != nil {
		for i := 0; i < s.count; i++ {
			k := s.slot(i)
			v := s.slots[k]
			s.slots[k] = zero
			q.host.Release(v)
		}
		s.count = 0
		next := s.next
		s.next = nil
		s = next
	}
}

// Traverse calls visit for every element, oldest first.
// visit must not modify the queue.
func (q *SegmentedQueue[T]) Traverse(visit func(T) error) error {
	for s := q.head; s != nil; s = s.next {
		for i := 0; i < s.count; i++ {
			if err := visit(s.slots[s.slot(i)]); err != nil {
				return err
			}
		}
	}
	return nil
}
