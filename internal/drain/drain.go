// Package drain runs the consumer side of a multi-producer queue.
//
// Run polls a Source until a Stopper trips and the source is empty, handing
// every item to a callback. It is the loop cmd/mpsc uses to empty a
// queue.ConcurrentQueue while producers are still writing.
//
// Counters keeps the producer-written and consumer-written totals on separate
// cache lines so the two sides do not false-share.
package drain

import (
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"
)

// Source is anything that can hand out one item without blocking.
// queue.ConcurrentQueue satisfies it.
type Source[T any] interface {
	TryDequeue() (T, bool)
}

// Counters tracks items across producers and the consumer.
type Counters struct {
	_        cpu.CacheLinePad
	produced atomic.Uint64
	_        cpu.CacheLinePad
	received atomic.Uint64
	_        cpu.CacheLinePad
}

// AddProduced records n items handed to the queue.
func (c *Counters) AddProduced(n uint64) { c.produced.Add(n) }

// Produced returns the number of items handed to the queue.
func (c *Counters) Produced() uint64 { return c.produced.Load() }

// Received returns the number of items taken out of the queue.
func (c *Counters) Received() uint64 { return c.received.Load() }

// Config tunes Run.
type Config struct {
	// ReportInterval is the minimum time between OnReport calls.
	// Zero disables reporting.
	ReportInterval time.Duration

	// ReportEvery is how many polls pass between clock checks. Default 1024.
	ReportEvery int

	// OnReport receives a snapshot of the running totals.
	OnReport func(Stats)

	// Counters, if set, is updated with every received item.
	Counters *Counters
}

// Stats summarizes one Run.
type Stats struct {
	Received  uint64
	IdlePolls uint64
	Reports   uint64
	Elapsed   time.Duration
}

// Run drains src until stop is done and a final poll finds src empty.
// handle may be nil.
func Run[T any](src Source[T], stop *Stopper, handle func(T), cfg Config) Stats {
	every := cfg.ReportEvery
	if every <= 0 {
		every = 1024
	}
	rep := newReporter(cfg.ReportInterval, every)

	var st Stats
	start := time.Now()
	for {
		v, ok := src.TryDequeue()
		if !ok {
			if !stop.Done() {
				st.IdlePolls++
				runtime.Gosched()
				continue
			}
			// Stop was observed after an empty poll; one more poll picks up
			// anything enqueued between the two.
			if v, ok = src.TryDequeue(); !ok {
				break
			}
		}

		if handle != nil {
			handle(v)
		}
		st.Received++
		if cfg.Counters != nil {
			cfg.Counters.received.Add(1)
		}

		if rep.tick() && cfg.OnReport != nil {
			st.Reports++
			st.Elapsed = time.Since(start)
			cfg.OnReport(st)
		}
	}
	st.Elapsed = time.Since(start)
	return st
}
