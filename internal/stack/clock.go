// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"context"
	"time"
)

type (
	// Clock abstracts the sequencer's settle delay so tests don't sleep.
	Clock interface {
		// Now returns the current time.
		Now() time.Time

		// Sleep blocks for the duration or until the context is canceled,
		// returning the context error in the latter case.
		Sleep(ctx context.Context, d time.Duration) error
	}

	// RealClock implements Clock using actual system time.
	// This is the default for production code.
	RealClock struct{}
)

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is canceled.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
