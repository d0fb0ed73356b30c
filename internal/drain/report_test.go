package drain

import (
	"testing"
	"time"
)

func TestReporter(t *testing.T) {
	interval := 50 * time.Millisecond
	r := newReporter(interval, 1)

	// Should not fire immediately
	if r.tick() {
		t.Error("expected tick() = false immediately after creation")
	}

	// Wait for interval + buffer
	time.Sleep(interval + 20*time.Millisecond)

	if !r.tick() {
		t.Error("expected tick() = true after interval elapsed")
	}

	// Should not fire again immediately
	if r.tick() {
		t.Error("expected tick() = false immediately after firing")
	}
}

func TestReporter_ChecksClockEveryN(t *testing.T) {
	r := newReporter(time.Nanosecond, 4)
	time.Sleep(time.Millisecond)

	var fired []int
	for i := 1; i <= 12; i++ {
		if r.tick() {
			fired = append(fired, i)
		}
	}
	if len(fired) != 3 || fired[0] != 4 || fired[1] != 8 || fired[2] != 12 {
		t.Errorf("expected to fire on calls 4, 8, 12, got %v", fired)
	}
}

func TestReporter_Disabled(t *testing.T) {
	r := newReporter(0, 1)
	time.Sleep(time.Millisecond)
	for i := 0; i < 100; i++ {
		if r.tick() {
			t.Fatal("expected tick() = false with zero interval")
		}
	}
}
