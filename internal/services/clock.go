package services

import (
	"context"
	"time"
)

// Clock abstracts wall time and sleeping so the timer and the poller can be
// driven by a fake clock in tests instead of real timers.
type Clock interface {
	Now() time.Time
	// Sleep waits for d or until ctx is done, reporting false on cancellation.
	Sleep(ctx context.Context, d time.Duration) bool
}

type realClock struct{}

// RealClock is the production clock.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
