// Package platform schedules work on the host's UI thread.
//
// Drawables are single-threaded: every lifecycle call and every frame
// completion must run on the same logical thread. Hosts install a dispatch
// function with [RegisterDispatch]; headless hosts and tests can use a
// [Looper] for that purpose.
package platform

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func()) bool
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on the UI thread.
// fn reports whether it accepted the callback, as [Looper.Post] does.
// This should be called once by the host during initialization. Passing nil
// unregisters the current function.
func RegisterDispatch(fn func(callback func()) bool) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no dispatch function
// is registered, the function rejected it, or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	return fn(callback)
}

// SetupTestDispatch installs l as the dispatch target for the duration of a
// test. The cleanup function should be testing.T.Cleanup or equivalent.
//
//	platform.SetupTestDispatch(looper, t.Cleanup)
func SetupTestDispatch(l *Looper, cleanup func(func())) {
	RegisterDispatch(l.Post)
	cleanup(func() { RegisterDispatch(nil) })
}
