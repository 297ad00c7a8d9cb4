// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test infrastructure: a fake clock for the
// sequencer's settle delay and an in-memory fake of the container engine.
package testutil

import (
	"context"
	"sync"
	"time"
)

// FakeClock implements the stack package's Clock contract with manually
// controlled time for testing. Sleep returns immediately after advancing the
// fake time and recording the requested duration.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	slept   []time.Duration
}

// NewFakeClock creates a FakeClock initialized to the given time.
// If initial is zero, defaults to a fixed reference time for reproducibility.
func NewFakeClock(initial time.Time) *FakeClock {
	if initial.IsZero() {
		initial = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &FakeClock{current: initial}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Sleep advances the fake time by d, records the request, and returns
// immediately. A canceled context still wins, matching real clock semantics.
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	c.slept = append(c.slept, d)
	return nil
}

// SleepCalls returns the durations passed to Sleep, in call order.
func (c *FakeClock) SleepCalls() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}
