package animation

import (
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

func (c stubClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func TestSetClockRestores(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := SetClock(stubClock{now: epoch})
	defer SetClock(prev)

	if got := Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
	if got := <-After(time.Hour); !got.Equal(epoch) {
		t.Errorf("After() delivered %v, want %v", got, epoch)
	}
}

func TestSetClockNilUsesSystemTime(t *testing.T) {
	prev := SetClock(nil)
	defer SetClock(prev)

	if _, ok := current().(realClock); !ok {
		t.Errorf("SetClock(nil) installed %T, want realClock", current())
	}
}

func TestUntil(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := SetClock(stubClock{now: epoch})
	defer SetClock(prev)

	if got := Until(epoch.Add(40 * time.Millisecond)); got != 40*time.Millisecond {
		t.Errorf("Until(future) = %v, want 40ms", got)
	}
	if got := Until(epoch.Add(-time.Second)); got != 0 {
		t.Errorf("Until(past) = %v, want 0", got)
	}
}
