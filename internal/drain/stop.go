package drain

import (
	"context"
	"sync/atomic"
)

// Stopper tells a consumer loop that no more items will be produced.
//
// Done is a single atomic load on the hot path. When bound to a context,
// the context is only consulted until it is first seen cancelled.
type Stopper struct {
	done atomic.Bool
	ctx  context.Context
}

// NewStopper creates a Stopper that also trips when ctx is cancelled.
// A nil ctx yields a Stopper driven only by Stop.
func NewStopper(ctx context.Context) *Stopper {
	return &Stopper{ctx: ctx}
}

// Stop signals the consumer. Safe to call multiple times.
func (s *Stopper) Stop() {
	s.done.Store(true)
}

// Done reports whether Stop was called or the bound context was cancelled.
func (s *Stopper) Done() bool {
	if s.done.Load() {
		return true
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.done.Store(true)
		return true
	}
	return false
}
