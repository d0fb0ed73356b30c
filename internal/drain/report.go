package drain

import "time"

// reporter fires at most once per interval, but only looks at the clock
// every N calls so the check stays out of the consumer's hot path.
type reporter struct {
	interval time.Duration
	every    int
	count    int
	last     time.Time
}

func newReporter(interval time.Duration, every int) *reporter {
	if every < 1 {
		every = 1
	}
	return &reporter{
		interval: interval,
		every:    every,
		last:     time.Now(),
	}
}

func (r *reporter) tick() bool {
	if r.interval <= 0 {
		return false
	}
	r.count++
	if r.count%r.every != 0 {
		return false
	}

	now := time.Now()
	if now.Sub(r.last) >= r.interval {
		r.last = now
		return true
	}
	return false
}
