package queue

const segmentMask = SegmentSize - 1

// segment is one fixed-capacity ring in a SegmentedQueue chain.
// It is owned by its predecessor, or by the queue when it is the head.
type segment[T any] struct {
	slots [SegmentSize]T
	head  int
	count int
	next  *segment[T]
}

func newSegment[T any]() (*segment[T], error) {
	return tryAlloc("segment", func() *segment[T] { return new(segment[T]) })
}

func (s *segment[T]) full() bool {
	return s.count == SegmentSize
}

func (s *segment[T]) slot(i int) int {
	return (s.head + i) & segmentMask
}

func (s *segment[T]) put(v T) {
	s.slots[s.slot(s.count)] = v
	s.count++
}

func (s *segment[T]) take() T {
	var zero T
	v := s.slots[s.head]
	s.slots[s.head] = zero
	s.head = (s.head + 1) & segmentMask
	s.count--
	return v
}

// clone copies the slots and ring indexes; next is left nil.
func (s *segment[T]) clone() (*segment[T], error) {
	c, err := newSegment[T]()
	if err != nil {
		return nil, err
	}
	c.slots = s.slots
	c.head = s.head
	c.count = s.count
	return c, nil
}
