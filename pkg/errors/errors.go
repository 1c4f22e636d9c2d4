// Package errors provides structured error reporting for animated drawables.
//
// Playback failures are never returned to the host. The driver and the frame
// producer absorb them locally and hand a [PlaybackError] to the global
// [ErrorHandler] so they can be logged.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindProduction indicates the producer delivered no frame for a request.
	KindProduction
	// KindDetached indicates a completion arrived for a drawable no host holds.
	KindDetached
	// KindRecycled indicates a playback entry point was used after recycle.
	KindRecycled
	// KindDecode indicates the payload could not be parsed or rendered.
	KindDecode
	// KindConfig indicates invalid configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindProduction:
		return "production"
	case KindDetached:
		return "detached"
	case KindRecycled:
		return "recycled"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors shared by the playback packages.
var (
	// ErrRecycled is reported when a recycled drawable is asked to play.
	ErrRecycled = errors.New("drawable recycled")

	// ErrNoFrames is returned for payloads without any image frame.
	ErrNoFrames = errors.New("payload has no frames")

	// ErrCleared is reported when a request reaches a released producer.
	ErrCleared = errors.New("producer resources released")

	// ErrBusy is reported when a second request is issued while one is in flight.
	ErrBusy = errors.New("frame request already in flight")

	// ErrNoDispatcher is reported when a completion cannot reach the UI thread.
	ErrNoDispatcher = errors.New("no UI dispatcher registered")

	// ErrDetached is reported when a completion arrives for a drawable whose
	// host no longer holds it.
	ErrDetached = errors.New("drawable detached from host")
)

// PlaybackError represents a structured playback error.
type PlaybackError struct {
	// Op is the operation that failed (e.g., "frames.Manager.RequestNextFrame").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// PayloadID identifies the animation, if known.
	PayloadID string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PlaybackError) Error() string {
	if e.PayloadID != "" {
		return fmt.Sprintf("%s [%s] payload=%s: %v", e.Op, e.Kind, e.PayloadID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "frames.Manager.produce").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the playback packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *PlaybackError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// DebugHandler is implemented by handlers that also accept trace output.
type DebugHandler interface {
	Debug(op, msg string)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
