// Package binding constructs queues the way a host language binding does:
// a queue type is picked by Kind and built from at most one iterable argument.
package binding

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/randomizedcoder/fastqueue/internal/queue"
)

// ErrUsage is returned for malformed construction calls.
var ErrUsage = errors.New("binding: usage error")

// Kind selects a queue implementation.
type Kind int

const (
	KindRing Kind = iota
	KindSegmented
	KindConcurrent
)

var kindNames = [...]string{
	KindRing:       "ring",
	KindSegmented:  "segmented",
	KindConcurrent: "concurrent",
}

// Kinds lists every supported Kind.
func Kinds() []Kind {
	return []Kind{KindRing, KindSegmented, KindConcurrent}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a name such as "ring" back to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown queue kind %q", ErrUsage, s)
}

// New creates a queue of the given kind with default options.
// See NewWith for the argument rules.
func New[T any](kind Kind, args ...any) (queue.Queue[T], error) {
	return NewWith[T](kind, nil, args...)
}

// NewWith creates a queue of the given kind.
//
// With no argument the queue starts empty. A single argument must be a []T
// or an iter.Seq[T] and is equivalent to constructing empty and then calling
// Extend or ExtendSeq. Anything else, or more than one argument, is ErrUsage.
func NewWith[T any](kind Kind, opts []queue.Option[T], args ...any) (queue.Queue[T], error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("%w: %s queue takes at most 1 argument (%d given)", ErrUsage, kind, len(args))
	}

	var q queue.Queue[T]
	switch kind {
	case KindRing:
		q = queue.NewRing(opts...)
	case KindSegmented:
		q = queue.NewSegmented(opts...)
	case KindConcurrent:
		q = queue.NewConcurrent(opts...)
	default:
		return nil, fmt.Errorf("%w: unknown queue kind %s", ErrUsage, kind)
	}

	if len(args) == 0 || args[0] == nil {
		return q, nil
	}

	var err error
	switch src := args[0].(type) {
	case []T:
		err = q.Extend(src...)
	case iter.Seq[T]:
		err = q.ExtendSeq(src)
	case func(func(T) bool):
		err = q.ExtendSeq(src)
	default:
		return nil, fmt.Errorf("%w: %T is not iterable", ErrUsage, args[0])
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Copy returns a shallow copy of q: new storage, shared element ownership.
func Copy[T any](q queue.Queue[T]) (queue.Queue[T], error) {
	var (
		c   queue.Queue[T]
		err error
	)
	switch src := q.(type) {
	case *queue.RingQueue[T]:
		c, err = src.Copy()
	case *queue.SegmentedQueue[T]:
		c, err = src.Copy()
	case *queue.ConcurrentQueue[T]:
		c, err = src.Copy()
	default:
		return nil, fmt.Errorf("%w: cannot copy %T", ErrUsage, q)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Destroy releases every reference q still owns. The queue's storage is left
// to the garbage collector.
func Destroy[T any](q queue.Queue[T]) {
	if q != nil {
		q.Clear()
	}
}
