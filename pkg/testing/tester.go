package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/driftgif/pkg/animation"
	"github.com/go-drift/driftgif/pkg/platform"
)

// DefaultDeliveryTimeout bounds how long the tester waits for producer
// goroutines to reach the clock or the UI queue.
const DefaultDeliveryTimeout = 2 * time.Second

// ErrNoDelivery is returned when no completion reaches the UI thread in time.
var ErrNoDelivery = errors.New("no frame delivered before timeout")

// ErrNotWaiting is returned when no producer started waiting on the clock.
var ErrNotWaiting = errors.New("no producer waiting on the clock")

// PlaybackTester drives drawables without a real host. It installs a fake
// animation clock and a Looper standing in for the UI thread, so tests can
// step frame delays deterministically and run completions on the test
// goroutine.
type PlaybackTester struct {
	clock     *FakeClock
	prevClock animation.Clock
	looper    *platform.Looper
	timeout   time.Duration
}

// NewPlaybackTester creates a tester and installs its clock and dispatcher.
// Call Cleanup() when done, or use NewPlaybackTesterWithT() instead.
func NewPlaybackTester() *PlaybackTester {
	clk := NewFakeClock()
	t := &PlaybackTester{
		clock:   clk,
		looper:  platform.NewLooper(),
		timeout: DefaultDeliveryTimeout,
	}
	t.prevClock = animation.SetClock(clk)
	platform.RegisterDispatch(t.looper.Post)
	return t
}

// NewPlaybackTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewPlaybackTesterWithT(t *testing.T) *PlaybackTester {
	tester := NewPlaybackTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock and unregisters the dispatcher.
func (t *PlaybackTester) Cleanup() {
	platform.RegisterDispatch(nil)
	t.looper.Quit()
	animation.SetClock(t.prevClock)
}

// SetTimeout changes how long Step and PumpFrame wait for producers.
func (t *PlaybackTester) SetTimeout(d time.Duration) {
	t.timeout = d
}

// Clock returns the fake clock for advancing time in tests.
func (t *PlaybackTester) Clock() *FakeClock {
	return t.clock
}

// Looper returns the queue standing in for the UI thread.
func (t *PlaybackTester) Looper() *platform.Looper {
	return t.looper
}

// Pump runs every callback already queued on the UI thread, including ones
// queued while draining. It returns how many ran.
func (t *PlaybackTester) Pump() int {
	return t.looper.Drain()
}

// PumpFrame waits for the next completion to reach the UI thread and runs it
// together with anything else queued.
func (t *PlaybackTester) PumpFrame() error {
	if !t.looper.RunOne(t.timeout) {
		return ErrNoDelivery
	}
	t.looper.Drain()
	return nil
}

// Step waits until a producer is pacing on the clock, advances the clock by
// d and pumps the resulting completion.
func (t *PlaybackTester) Step(d time.Duration) error {
	if err := t.WaitForWaiter(); err != nil {
		return err
	}
	t.clock.Advance(d)
	return t.PumpFrame()
}

// WaitForWaiter blocks until some goroutine waits on the fake clock.
func (t *PlaybackTester) WaitForWaiter() error {
	deadline := time.Now().Add(t.timeout)
	for t.clock.Waiters() == 0 {
		if time.Now().After(deadline) {
			return ErrNotWaiting
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}
