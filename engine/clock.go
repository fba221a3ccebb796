package engine

import (
	"sync"
	"time"
)

// Clock supplies the engine's notion of now
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads wall time, monotonic reading included
var SystemClock Clock = ClockFunc(time.Now)

// ManualClock only moves when told to
// Timers, cool-downs and the limiter all read it, so a test or the headless
// simulator can run minutes of rounds in milliseconds
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps to t, backwards jumps are allowed
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves forward by d and returns the new time
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Frames advances by n frame intervals, the cadence Step expects
func (c *ManualClock) Frames(n int, interval time.Duration) time.Time {
	return c.Advance(time.Duration(n) * interval)
}
