// Package testutil provides shared helpers for vault tests.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a deterministic vault.Clock for tests.
//
// Each call to Now() returns the base time advanced by one step, so
// records created in sequence get distinct, reproducible timestamps.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu   sync.Mutex
	base time.Time
	step time.Duration
	n    int64
}

// NewFixedClock creates a clock starting at 2024-06-01T12:00:00Z
// advancing one second per call.
func NewFixedClock() *FixedClock {
	return &FixedClock{
		base: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		step: time.Second,
	}
}

// NewFixedClockAt creates a clock with an explicit base and step.
func NewFixedClockAt(base time.Time, step time.Duration) *FixedClock {
	return &FixedClock{base: base, step: step}
}

// Now returns the next timestamp in the sequence.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.base.Add(time.Duration(c.n) * c.step)
	c.n++
	return t
}

// Reset rewinds the clock to its base time.
func (c *FixedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}
