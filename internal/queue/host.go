package queue

import "reflect"

// Host manages element ownership and identity on behalf of a queue.
//
// The queue is one of possibly several holders of an element. It calls
// Acquire once for every value it stores and Release once for every value it
// drops without handing it to a caller.
type Host[T any] interface {
	// Acquire records one more reference held by the queue.
	Acquire(v T)

	// Release drops a reference previously recorded by Acquire.
	Release(v T)

	// Equal reports whether a and b are equal for Contains.
	Equal(a, b T) bool

	// None returns the "no value" sentinel.
	None() T

	// IsNone reports whether v is the "no value" sentinel.
	// Enqueue and Extend silently skip such values.
	IsNone(v T) bool
}

// PlainHost is the default Host: no reference counting and no sentinel.
//
// Equal uses == when both values are comparable all the way down, including
// the contents of interface fields, and falls back to reflect.DeepEqual
// otherwise, so it never panics.
type PlainHost[T any] struct{}

// Acquire is a no-op.
func (PlainHost[T]) Acquire(T) {}

// Release is a no-op.
func (PlainHost[T]) Release(T) {}

// Equal reports whether a and b are equal.
func (PlainHost[T]) Equal(a, b T) bool {
	x, y := any(a), any(b)
	if x == nil || y == nil {
		return x == y
	}
	if reflect.ValueOf(x).Comparable() && reflect.ValueOf(y).Comparable() {
		return x == y
	}
	return reflect.DeepEqual(x, y)
}

// None returns the zero value of T.
func (PlainHost[T]) None() T {
	var zero T
	return zero
}

// IsNone always returns false: every value, including the zero value, is stored.
func (PlainHost[T]) IsNone(T) bool { return false }

type config[T any] struct {
	host     Host[T]
	capacity int
	max      int
}

// Option configures a queue at construction.
type Option[T any] func(*config[T])

// WithHost sets the ownership host. A nil host keeps PlainHost.
func WithHost[T any](h Host[T]) Option[T] {
	return func(c *config[T]) {
		if h != nil {
			c.host = h
		}
	}
}

// WithInitialCapacity sets the starting RingQueue capacity.
// It is rounded up to a power of two. SegmentedQueue ignores it.
func WithInitialCapacity[T any](n int) Option[T] {
	return func(c *config[T]) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithMaxCapacity bounds the number of slots a queue may allocate.
// Growing past it fails with ErrAllocationFailure. Zero means unbounded.
func WithMaxCapacity[T any](n int) Option[T] {
	return func(c *config[T]) {
		if n >= 0 {
			c.max = n
		}
	}
}

func newConfig[T any](opts []Option[T]) config[T] {
	c := config[T]{
		host:     PlainHost[T]{},
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
