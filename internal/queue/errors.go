package queue

import "errors"

var (
	// ErrEmptyQueue is returned when removing from a queue with no elements.
	ErrEmptyQueue = errors.New("queue: dequeue from an empty queue")

	// ErrIndexOutOfRange is returned when a normalized index falls outside [0, Len()).
	ErrIndexOutOfRange = errors.New("queue: index out of range")

	// ErrAllocationFailure is returned when backing storage cannot grow.
	// The queue is left exactly as it was before the failed call.
	ErrAllocationFailure = errors.New("queue: allocation failure")
)
