package queue_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/randomizedcoder/fastqueue/internal/queue"
)

// TestConcurrent_ManyProducers verifies that N producers enqueuing M items
// each leave exactly N*M items, none lost and none duplicated.
//
// Run with -race to check the locking.
func TestConcurrent_ManyProducers(t *testing.T) {
	const producers = 8
	const perProducer = 5000

	q := queue.NewConcurrent[int]()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Enqueue(base + i); err != nil {
					t.Errorf("Enqueue: %v", err)
					return
				}
			}
		}(p * perProducer)
	}
	wg.Wait()

	if q.Len() != producers*perProducer {
		t.Fatalf("expected Len() = %d, got %d", producers*perProducer, q.Len())
	}

	seen := make([]bool, producers*perProducer)
	last := make([]int, producers)
	for p := range last {
		last[p] = -1
	}
	for !q.IsEmpty() {
		v, err := q.Dequeue()
		if err != nil {
			t.Fatal(err)
		}
		if seen[v] {
			t.Fatalf("duplicate item %d", v)
		}
		seen[v] = true

		// Items from one producer keep their relative order.
		p := v / perProducer
		if v <= last[p] {
			t.Fatalf("producer %d: %d dequeued after %d", p, v, last[p])
		}
		last[p] = v
	}
	for v, ok := range seen {
		if !ok {
			t.Fatalf("lost item %d", v)
		}
	}
}

// TestConcurrent_ProducersAndConsumers runs producers and consumers at once
// and checks that every item is consumed exactly once.
func TestConcurrent_ProducersAndConsumers(t *testing.T) {
	const producers = 4
	const consumers = 4
	const perProducer = 10000
	const total = producers * perProducer

	q := queue.NewConcurrent[int]()
	seen := make([]atomic.Bool, total)
	var consumed atomic.Int64
	var dups atomic.Int64

	var prod sync.WaitGroup
	for p := 0; p < producers; p++ {
		prod.Add(1)
		go func(base int) {
			defer prod.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(base + i)
			}
		}(p * perProducer)
	}

	var cons sync.WaitGroup
	for c := 0; c < consumers; c++ {
		cons.Add(1)
		go func() {
			defer cons.Done()
			for consumed.Load() < total {
				v, ok := q.TryDequeue()
				if !ok {
					continue
				}
				if seen[v].Swap(true) {
					dups.Add(1)
				}
				consumed.Add(1)
			}
		}()
	}

	prod.Wait()
	cons.Wait()

	if dups.Load() != 0 {
		t.Errorf("expected no duplicates, got %d", dups.Load())
	}
	if consumed.Load() != total {
		t.Errorf("expected %d consumed, got %d", total, consumed.Load())
	}
	if !q.IsEmpty() {
		t.Errorf("expected empty queue, Len() = %d", q.Len())
	}
}

// TestConcurrent_MixedOperations exercises every method from several
// goroutines. It checks nothing beyond the length invariant: the point is
// to give the race detector something to look at.
func TestConcurrent_MixedOperations(t *testing.T) {
	q := queue.NewConcurrent[int]()
	q.Extend(seq(1000)...)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				switch (g + i) % 8 {
				case 0:
					q.Enqueue(i)
				case 1:
					q.Poll()
				case 2:
					q.Get(-1)
				case 3:
					q.Set(0, i)
				case 4:
					q.Contains(i)
				case 5:
					q.Extend(i, i+1)
				case 6:
					if c, err := q.Copy(); err == nil {
						c.Len()
					}
				case 7:
					q.Traverse(func(int) error { return nil })
				}
			}
		}(g)
	}
	wg.Wait()

	n := 0
	q.Traverse(func(int) error { n++; return nil })
	if n != q.Len() {
		t.Errorf("expected Traverse to visit Len() = %d elements, visited %d", q.Len(), n)
	}
}
