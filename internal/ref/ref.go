// Package ref provides shared-ownership handles for host-managed values.
//
// An Object is held by any number of owners. Each owner takes a reference
// with IncRef and gives it back with DecRef; when the last reference goes,
// the optional finalizer runs exactly once.
//
// Host adapts *Object to queue.Host so queues acquire a reference for every
// element they store and release it when the element is dropped.
package ref

import (
	"fmt"
	"sync/atomic"

	"github.com/randomizedcoder/fastqueue/internal/queue"
)

// Object is a host-managed value under shared ownership.
type Object struct {
	value    any
	refs     atomic.Int64
	finalize func(any)
}

// New returns an Object holding v with one reference owned by the caller.
func New(v any) *Object {
	o := &Object{value: v}
	o.refs.Store(1)
	return o
}

// NewWithFinalizer is like New, but runs finalize with the value once the
// reference count drops to zero.
func NewWithFinalizer(v any, finalize func(any)) *Object {
	o := New(v)
	o.finalize = finalize
	return o
}

// Value returns the wrapped value.
func (o *Object) Value() any {
	return o.value
}

// Refs returns the current reference count.
func (o *Object) Refs() int64 {
	return o.refs.Load()
}

// Alive reports whether any reference is still held.
func (o *Object) Alive() bool {
	return o.refs.Load() > 0
}

// IncRef takes one more reference.
//
// Panics if the object has already been freed.
func (o *Object) IncRef() {
	if n := o.refs.Add(1); n <= 1 {
		panic(fmt.Sprintf("ref: IncRef on freed object (refs=%d)", n-1))
	}
}

// DecRef gives back one reference, running the finalizer when it was the last.
//
// Panics if the count would go negative: that is an ownership bug in the caller.
func (o *Object) DecRef() {
	n := o.refs.Add(-1)
	switch {
	case n < 0:
		panic(fmt.Sprintf("ref: DecRef below zero (refs=%d)", n))
	case n == 0 && o.finalize != nil:
		o.finalize(o.value)
	}
}

// String formats the object for debugging.
func (o *Object) String() string {
	if o == nil {
		return "<none>"
	}
	return fmt.Sprintf("%v(refs=%d)", o.value, o.Refs())
}

// Host implements queue.Host for *Object. A nil *Object is the "no value"
// sentinel and is never reference counted.
type Host struct{}

// Acquire takes a reference on o.
func (Host) Acquire(o *Object) {
	if o != nil {
		o.IncRef()
	}
}

// Release gives back a reference on o.
func (Host) Release(o *Object) {
	if o != nil {
		o.DecRef()
	}
}

// Equal reports whether a and b are the same object or wrap equal values.
func (Host) Equal(a, b *Object) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return queue.PlainHost[any]{}.Equal(a.value, b.value)
}

// None returns the nil sentinel.
func (Host) None() *Object { return nil }

// IsNone reports whether o is the nil sentinel.
func (Host) IsNone(o *Object) bool { return o == nil }
