package model

import (
	"sync"
	"time"
)

// Clock counts down one side's thinking time while it runs.
type Clock struct {
	mu        sync.Mutex
	remaining time.Duration
	startedAt time.Time // zero while stopped
}

func NewClock(budget time.Duration) *Clock {
	return &Clock{remaining: budget}
}

// Start resumes the countdown. Starting a running clock does nothing.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.startedAt.IsZero() {
		c.startedAt = time.Now()
	}
}

// Stop pauses the countdown and charges the time used since Start.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.startedAt.IsZero() {
		c.remaining -= time.Since(c.startedAt)
		c.startedAt = time.Time{}
	}
}

func (c *Clock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.startedAt.IsZero()
}

// GetTimeLeft includes the time used by a running clock so far.
func (c *Clock) GetTimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.startedAt.IsZero() {
		return c.remaining
	}
	return c.remaining - time.Since(c.startedAt)
}

// deciseconds is the remaining time in tenths of a second, the unit clients display.
func (c *Clock) deciseconds() int {
	return int(c.GetTimeLeft().Milliseconds() / 100)
}
