package platform

import (
	"slices"
	"sync"
)

// LifecycleState represents the host's lifecycle state.
type LifecycleState string

const (
	// LifecycleStateResumed indicates the host is visible and has focus.
	LifecycleStateResumed LifecycleState = "resumed"

	// LifecycleStateInactive indicates the host is visible but lost focus,
	// for example while a system dialog is shown.
	LifecycleStateInactive LifecycleState = "inactive"

	// LifecycleStatePaused indicates the host is not visible but still running.
	LifecycleStatePaused LifecycleState = "paused"

	// LifecycleStateDetached indicates the host has no view to draw into.
	LifecycleStateDetached LifecycleState = "detached"
)

// Visible reports whether content is on screen in state s.
func (s LifecycleState) Visible() bool {
	return s == LifecycleStateResumed || s == LifecycleStateInactive
}

// LifecycleHandler is called when lifecycle state changes.
type LifecycleHandler func(state LifecycleState)

// Lifecycle tracks a host's lifecycle state and notifies handlers of
// changes. It starts resumed.
type Lifecycle struct {
	mu       sync.RWMutex
	state    LifecycleState
	handlers map[int]LifecycleHandler
	nextID   int
}

// NewLifecycle returns a resumed lifecycle.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		state:    LifecycleStateResumed,
		handlers: make(map[int]LifecycleHandler),
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() LifecycleState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// AddHandler registers a handler to be called on lifecycle changes.
// Returns a function that can be called to remove the handler.
func (l *Lifecycle) AddHandler(handler LifecycleHandler) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.handlers[id] = handler
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.handlers, id)
		l.mu.Unlock()
	}
}

// IsResumed returns true if the host is in the resumed state.
func (l *Lifecycle) IsResumed() bool {
	return l.State() == LifecycleStateResumed
}

// IsPaused returns true if the host is paused.
func (l *Lifecycle) IsPaused() bool {
	return l.State() == LifecycleStatePaused
}

// SetState updates the lifecycle state and notifies handlers in
// registration order. Setting the current state is a no-op.
func (l *Lifecycle) SetState(newState LifecycleState) {
	l.mu.Lock()
	if l.state == newState {
		l.mu.Unlock()
		return
	}
	l.state = newState
	ids := make([]int, 0, len(l.handlers))
	for id := range l.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	handlers := make([]LifecycleHandler, len(ids))
	for i, id := range ids {
		handlers[i] = l.handlers[id]
	}
	l.mu.Unlock()

	for _, h := range handlers {
		h(newState)
	}
}
