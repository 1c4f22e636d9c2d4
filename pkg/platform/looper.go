package platform

import (
	"context"
	"sync"
	"time"

	"github.com/go-drift/driftgif/pkg/errors"
)

// Looper is a single-consumer callback queue acting as a UI thread.
//
// Post may be called from any goroutine. Callbacks run one at a time on the
// goroutine that calls Run, Drain or RunOne, in the order they were posted.
type Looper struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

// NewLooper creates an empty looper.
func NewLooper() *Looper {
	return &Looper{wake: make(chan struct{}, 1)}
}

// Post enqueues cb. It returns false if the looper has quit or cb is nil.
func (l *Looper) Post(cb func()) bool {
	if cb == nil {
		return false
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, cb)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Pending returns the number of queued callbacks.
func (l *Looper) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Quit stops Run and rejects further posts. Queued callbacks are dropped.
func (l *Looper) Quit() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes callbacks until ctx is done or Quit is called.
func (l *Looper) Run(ctx context.Context) error {
	for {
		l.Drain()
		if l.isClosed() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Drain runs every callback queued at the time of the call, plus any they
// post in turn, and returns how many ran.
func (l *Looper) Drain() int {
	n := 0
	for {
		cb, ok := l.next()
		if !ok {
			return n
		}
		l.invoke(cb)
		n++
	}
}

// RunOne waits up to timeout for a single callback and runs it.
// It returns false if nothing arrived in time.
func (l *Looper) RunOne(timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		if cb, ok := l.next(); ok {
			l.invoke(cb)
			return true
		}
		if l.isClosed() {
			return false
		}
		select {
		case <-l.wake:
		case <-deadline.C:
			return false
		}
	}
}

func (l *Looper) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	cb := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return cb, true
}

func (l *Looper) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Looper) invoke(cb func()) {
	defer errors.Recover("platform.Looper")
	cb()
}
