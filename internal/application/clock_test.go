package application_test

import (
	"sync"
	"time"
)

// fakeClock is a deterministic, advanceable clock for token tests.
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{current: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
