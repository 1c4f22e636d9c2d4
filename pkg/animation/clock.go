// Package animation provides the time source used to pace frame delivery.
//
// Frame producers never read the wall clock directly. They go through
// [Now] and [After] so tests can inject a fake clock via [SetClock] and step
// playback deterministically.
package animation

import (
	"sync"
	"time"
)

// Clock provides time for animations. The default implementation uses
// system time. Tests can inject a fake clock via SetClock to control
// animation timing deterministically.
type Clock interface {
	Now() time.Time
	// After returns a channel that receives the current time once d has
	// elapsed on this clock.
	After(d time.Duration) <-chan time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

var (
	clockMu sync.RWMutex
	// clock is the package-level time source, replaceable for testing.
	clock Clock = realClock{}
)

// SetClock replaces the animation clock. Returns the previous clock
// so callers can restore it during cleanup. Passing nil restores system time.
func SetClock(c Clock) Clock {
	if c == nil {
		c = realClock{}
	}
	clockMu.Lock()
	defer clockMu.Unlock()
	prev := clock
	clock = c
	return prev
}

func current() Clock {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock
}

// Now returns the current time from the active clock.
func Now() time.Time { return current().Now() }

// After waits for d on the active clock.
func After(d time.Duration) <-chan time.Time { return current().After(d) }

// Until returns how long remains until deadline on the active clock,
// or zero if the deadline has passed.
func Until(deadline time.Time) time.Duration {
	d := deadline.Sub(Now())
	if d < 0 {
		return 0
	}
	return d
}
