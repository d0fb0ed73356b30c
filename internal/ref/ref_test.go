package ref_test

import (
	"sync"
	"testing"

	"github.com/randomizedcoder/fastqueue/internal/queue"
	"github.com/randomizedcoder/fastqueue/internal/ref"
)

var _ queue.Host[*ref.Object] = ref.Host{}

func TestObject_Refs(t *testing.T) {
	o := ref.New("x")
	if o.Refs() != 1 || !o.Alive() {
		t.Fatalf("expected a new object to hold 1 reference, got %d", o.Refs())
	}

	o.IncRef()
	o.IncRef()
	if o.Refs() != 3 {
		t.Errorf("expected Refs() = 3, got %d", o.Refs())
	}
	o.DecRef()
	o.DecRef()
	o.DecRef()
	if o.Refs() != 0 || o.Alive() {
		t.Errorf("expected freed object, Refs() = %d", o.Refs())
	}
	if o.Value() != "x" {
		t.Errorf("expected Value() = x, got %v", o.Value())
	}
}

func TestObject_FinalizerRunsOnce(t *testing.T) {
	runs := 0
	var got any
	o := ref.NewWithFinalizer(42, func(v any) { runs++; got = v })

	o.IncRef()
	o.DecRef()
	if runs != 0 {
		t.Fatal("expected finalizer not to run while referenced")
	}
	o.DecRef()
	if runs != 1 || got != 42 {
		t.Errorf("expected one finalizer run with 42, got %d runs with %v", runs, got)
	}
}

func TestObject_DecRefBelowZeroPanics(t *testing.T) {
	o := ref.New(1)
	o.DecRef()

	defer func() {
		if recover() == nil {
			t.Error("expected DecRef() on a freed object to panic")
		}
	}()
	o.DecRef()
}

func TestObject_IncRefAfterFreePanics(t *testing.T) {
	o := ref.New(1)
	o.DecRef()

	defer func() {
		if recover() == nil {
			t.Error("expected IncRef() on a freed object to panic")
		}
	}()
	o.IncRef()
}

// TestObject_Race tests concurrent reference counting.
// Run with: go test -race ./internal/ref
func TestObject_Race(t *testing.T) {
	freed := 0
	o := ref.NewWithFinalizer(nil, func(any) { freed++ })
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				o.IncRef()
				o.DecRef()
			}
		}()
	}
	wg.Wait()

	if o.Refs() != 1 {
		t.Errorf("expected Refs() = 1, got %d", o.Refs())
	}
	o.DecRef()
	if freed != 1 {
		t.Errorf("expected one finalizer run, got %d", freed)
	}
}

func TestObject_String(t *testing.T) {
	var none *ref.Object
	if none.String() != "<none>" {
		t.Errorf("expected <none>, got %q", none.String())
	}
	if s := ref.New("a").String(); s != "a(refs=1)" {
		t.Errorf("expected a(refs=1), got %q", s)
	}
}

func TestHost(t *testing.T) {
	var h ref.Host
	a := ref.New([]string{"x"})

	h.Acquire(a)
	if a.Refs() != 2 {
		t.Errorf("expected Acquire to add a reference, got %d", a.Refs())
	}
	h.Release(a)
	if a.Refs() != 1 {
		t.Errorf("expected Release to drop a reference, got %d", a.Refs())
	}

	// nil is the sentinel and is never counted.
	h.Acquire(nil)
	h.Release(nil)
	if !h.IsNone(nil) || h.IsNone(a) || h.None() != nil {
		t.Error("expected nil to be the only None value")
	}

	if !h.Equal(a, a) || !h.Equal(a, ref.New([]string{"x"})) {
		t.Error("expected Equal by identity and by value")
	}
	if h.Equal(a, nil) || h.Equal(a, ref.New([]string{"y"})) {
		t.Error("expected Equal() = false for different values")
	}
	if !h.Equal(ref.New(nil), ref.New(nil)) {
		t.Error("expected objects wrapping nil to be equal")
	}
}

type box struct{ V any }

func TestHost_EqualInterfaceFieldHoldingSlice(t *testing.T) {
	var h ref.Host
	if !h.Equal(ref.New(box{[]int{1}}), ref.New(box{[]int{1}})) {
		t.Error("expected objects wrapping equal slices inside a struct to be equal")
	}
	if h.Equal(ref.New(box{[]int{1}}), ref.New(box{[]int{2}})) {
		t.Error("expected Equal() = false for different slices")
	}

	q := queue.NewSegmented(queue.WithHost[*ref.Object](h))
	if err := q.Enqueue(ref.New(box{[]int{1, 2}})); err != nil {
		t.Fatal(err)
	}
	if !q.Contains(ref.New(box{[]int{1, 2}})) {
		t.Error("expected Contains() to find the equal object")
	}
}
