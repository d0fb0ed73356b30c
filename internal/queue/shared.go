package queue

import (
	"fmt"
	"iter"
	"math"
	"runtime"
)

// maxSlots caps any single allocation so that doubling never overflows int.
const maxSlots = math.MaxInt32 + 1

// normalizeIndex maps a possibly negative index onto [0, n).
func normalizeIndex(i, n int) (int, error) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
	}
	return i, nil
}

// roundUpPow2 returns the smallest power of two >= n (and >= 1).
func roundUpPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// roundDownPow2 returns the largest power of two <= n (and >= 1).
func roundDownPow2(n int) int {
	p := 1
	for p<<1 <= n && p<<1 > 0 {
		p <<= 1
	}
	return p
}

// tryAlloc runs alloc and turns a runtime allocation panic into
// ErrAllocationFailure, so callers can abandon a grow without side effects.
func tryAlloc[R any](what string, alloc func() R) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			if _, ok := p.(runtime.Error); !ok {
				panic(p)
			}
			var zero R
			r, err = zero, fmt.Errorf("%w: %s: %v", ErrAllocationFailure, what, p)
		}
	}()
	return alloc(), nil
}

// allocSlots allocates n zeroed slots.
func allocSlots[T any](n int) ([]T, error) {
	if n <= 0 || n > maxSlots {
		return nil, fmt.Errorf("%w: %d slots", ErrAllocationFailure, n)
	}
	return tryAlloc("ring buffer", func() []T { return make([]T, n) })
}

// storable counts the values Enqueue would actually store.
func storable[T any](h Host[T], values []T) int {
	n := 0
	for _, v := range values {
		if !h.IsNone(v) {
			n++
		}
	}
	return n
}

// enqueueSeq feeds seq into enqueue until seq is exhausted or enqueue fails.
// Elements accepted before a failure stay in the queue.
func enqueueSeq[T any](seq iter.Seq[T], enqueue func(T) error) error {
	if seq == nil {
		return nil
	}
	var err error
	seq(func(v T) bool {
		err = enqueue(v)
		return err == nil
	})
	return err
}
