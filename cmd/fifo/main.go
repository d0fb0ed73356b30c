// Command fifo benchmarks the single-goroutine FIFO queue implementations.
//
// Each queue is pre-filled to -depth elements and then driven through -n
// enqueue+dequeue pairs, so the ring wraps and segments are linked and freed
// continuously.
//
// Usage:
//
//	go run ./cmd/fifo -n 10000000 -size 1024 -depth 300 -kind all
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	eapache "github.com/eapache/queue"

	"github.com/randomizedcoder/fastqueue/internal/binding"
	"github.com/randomizedcoder/fastqueue/internal/queue"
)

type result struct {
	name string
	dur  time.Duration
}

func main() {
	iterations := flag.Int("n", 10_000_000, "number of enqueue+dequeue pairs")
	size := flag.Int("size", queue.DefaultCapacity, "initial ring capacity")
	depth := flag.Int("depth", 300, "elements kept in the queue while measuring")
	kind := flag.String("kind", "all", "queue kind: all, ring, segmented or concurrent")
	flag.Parse()

	kinds := binding.Kinds()
	if *kind != "all" {
		k, err := binding.ParseKind(*kind)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		kinds = []binding.Kind{k}
	}

	fmt.Printf("Benchmarking FIFO queues (%d iterations, size=%d, depth=%d)\n", *iterations, *size, *depth)
	fmt.Println("─────────────────────────────────────────────────")

	var results []result
	for _, k := range kinds {
		q, err := binding.NewWith[int](k, []queue.Option[int]{queue.WithInitialCapacity[int](*size)})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		dur, err := run(q, *iterations, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", k, err)
			os.Exit(1)
		}
		results = append(results, result{k.String(), dur})
	}

	results = append(results,
		result{"eapache/queue", runEapache(*iterations, *depth)},
		result{"channel", runChannel(*iterations, *depth)},
	)

	fmt.Printf("\nResults (enqueue + dequeue per iteration):\n")
	baseline := float64(results[len(results)-1].dur.Nanoseconds()) / float64(*iterations)
	for _, r := range results {
		perOp := float64(r.dur.Nanoseconds()) / float64(*iterations)
		fmt.Printf("  %-16s %12v  %8.2f ns/op  %6.2fx vs channel  %8.2f M ops/sec\n",
			r.name, r.dur, perOp, baseline/perOp, 1000/perOp)
	}
}

func run(q queue.Queue[int], iterations, depth int) (time.Duration, error) {
	for i := 0; i < depth; i++ {
		if err := q.Enqueue(i); err != nil {
			return 0, err
		}
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := q.Enqueue(i); err != nil {
			return 0, err
		}
		if _, err := q.Dequeue(); err != nil {
			return 0, err
		}
	}
	dur := time.Since(start)

	if q.Len() != depth {
		return dur, fmt.Errorf("length drifted: want %d, got %d", depth, q.Len())
	}
	return dur, nil
}

func runEapache(iterations, depth int) time.Duration {
	q := eapache.New()
	for i := 0; i < depth; i++ {
		q.Add(i)
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		q.Add(i)
		q.Remove()
	}
	return time.Since(start)
}

func runChannel(iterations, depth int) time.Duration {
	ch := make(chan int, depth+1)
	for i := 0; i < depth; i++ {
		ch <- i
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		ch <- i
		<-ch
	}
	return time.Since(start)
}
