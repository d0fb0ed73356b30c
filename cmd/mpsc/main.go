// Command mpsc benchmarks many producers feeding one consumer.
//
// It compares queue.ConcurrentQueue, drained by drain.Run, against
// go-lock-free-ring's sharded MPSC ring, and checks that every produced item
// is received exactly once.
//
// Usage:
//
//	go run ./cmd/mpsc -producers 8 -n 1000000
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/fastqueue/internal/drain"
	"github.com/randomizedcoder/fastqueue/internal/queue"
)

func main() {
	producers := flag.Int("producers", 4, "number of producer goroutines")
	perProducer := flag.Int("n", 1_000_000, "items per producer")
	capacity := flag.Uint64("ring", 4096, "sharded ring total capacity")
	progress := flag.Duration("progress", time.Second, "progress report interval (0 disables)")
	flag.Parse()

	total := *producers * *perProducer
	fmt.Printf("Benchmarking MPSC (%d producers x %d items = %d)\n", *producers, *perProducer, total)
	fmt.Println("─────────────────────────────────────────────────")

	cqDur, err := runConcurrentQueue(*producers, *perProducer, *progress)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ConcurrentQueue:", err)
		os.Exit(1)
	}

	ringDur, err := runShardedRing(*producers, *perProducer, *capacity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ShardedRing:", err)
		os.Exit(1)
	}

	cqPerOp := float64(cqDur.Nanoseconds()) / float64(total)
	ringPerOp := float64(ringDur.Nanoseconds()) / float64(total)

	fmt.Printf("\nResults (per item, end to end):\n")
	fmt.Printf("  ConcurrentQueue:  %v (%.2f ns/op, %.2f M ops/sec)\n", cqDur, cqPerOp, 1000/cqPerOp)
	fmt.Printf("  ShardedRing:      %v (%.2f ns/op, %.2f M ops/sec)\n", ringDur, ringPerOp, 1000/ringPerOp)

	if ringPerOp < cqPerOp {
		fmt.Printf("\n  Speedup:  %.2fx (ShardedRing faster)\n", cqPerOp/ringPerOp)
	} else {
		fmt.Printf("\n  Speedup:  %.2fx (ConcurrentQueue faster)\n", ringPerOp/cqPerOp)
	}
}

func runConcurrentQueue(producers, perProducer int, progress time.Duration) (time.Duration, error) {
	q := queue.NewConcurrent[int]()
	var counters drain.Counters
	stop := drain.NewStopper(context.Background())

	total := producers * perProducer
	seen := make([]bool, total)
	dups := 0

	var wg sync.WaitGroup
	start := time.Now()
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Enqueue(base + i); err != nil {
					panic(err)
				}
			}
			counters.AddProduced(uint64(perProducer))
		}(p * perProducer)
	}
	go func() {
		wg.Wait()
		stop.Stop()
	}()

	st := drain.Run[int](q, stop, func(v int) {
		if seen[v] {
			dups++
		}
		seen[v] = true
	}, drain.Config{
		ReportInterval: progress,
		Counters:       &counters,
		OnReport: func(s drain.Stats) {
			fmt.Printf("  ... %d/%d received after %v\n", s.Received, total, s.Elapsed.Round(time.Millisecond))
		},
	})
	dur := time.Since(start)

	if dups != 0 {
		return dur, fmt.Errorf("%d duplicated items", dups)
	}
	if st.Received != uint64(total) || counters.Received() != counters.Produced() {
		return dur, fmt.Errorf("lost items: produced %d, received %d", counters.Produced(), st.Received)
	}
	fmt.Printf("  ConcurrentQueue: %d received, %d idle polls\n", st.Received, st.IdlePolls)
	return dur, nil
}

func runShardedRing(producers, perProducer int, capacity uint64) (time.Duration, error) {
	r, err := ring.NewShardedRing(capacity, uint64(producers))
	if err != nil {
		return 0, err
	}

	total := producers * perProducer
	var wg sync.WaitGroup
	start := time.Now()
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid uint64) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				for !r.Write(pid, i) {
				}
			}
		}(uint64(p))
	}

	received := 0
	for received < total {
		if _, ok := r.TryRead(); ok {
			received++
		}
	}
	wg.Wait()
	return time.Since(start), nil
}
