// Package frames produces decoded animation frames off the UI thread.
//
// A [Producer] accepts one request at a time. The default [Manager] decodes
// the next frame on its own goroutine, applies the [Transformation] captured
// when the request was made, waits for the previous frame's display delay and
// hands the result back on the UI thread through [platform.Dispatch].
package frames

import (
	"image"
	"sync"
	"time"
)

// Frame is one composited, transformed, ready-to-render image.
type Frame struct {
	Image *image.RGBA
	// Index is the position of the frame in the animation.
	Index int
	// Delay is how long the frame should stay on screen.
	Delay time.Duration

	release func(*image.RGBA)
	once    sync.Once
}

// NewFrame wraps img. release, if non-nil, is called once by Release.
func NewFrame(img *image.RGBA, index int, delay time.Duration, release func(*image.RGBA)) *Frame {
	return &Frame{Image: img, Index: index, Delay: delay, release: release}
}

// Release hands the frame's buffer back to the producer's pool.
// It is safe to call on a nil frame and more than once.
func (f *Frame) Release() {
	if f == nil {
		return
	}
	f.once.Do(func() {
		if f.release != nil && f.Image != nil {
			f.release(f.Image)
		}
	})
}

// Callback receives the result of a frame request. A nil frame means the
// producer could not produce one.
type Callback interface {
	OnFrameReady(frame *Frame)
}

// CallbackFunc adapts a plain function to Callback.
type CallbackFunc func(frame *Frame)

// OnFrameReady calls f(frame).
func (f CallbackFunc) OnFrameReady(frame *Frame) { f(frame) }

// Producer produces frames asynchronously, one request at a time.
type Producer interface {
	// RequestNextFrame starts producing the next frame. cb is invoked exactly
	// once, on the UI thread, and never before RequestNextFrame returns.
	// A request made while another is in flight waits behind it. After
	// ReleaseResources a completion no UI thread accepts may be dropped.
	// It is safe to call again from within cb.
	RequestNextFrame(cb Callback)
	// ReleaseResources releases pooled buffers and stops further scheduling.
	// It is safe to call more than once.
	ReleaseResources()
}
