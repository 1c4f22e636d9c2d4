package gifdrawable

import (
	"github.com/go-drift/driftgif/pkg/errors"
	"github.com/go-drift/driftgif/pkg/frames"
	"github.com/go-drift/driftgif/pkg/gifdecoder"
	"github.com/go-drift/driftgif/pkg/platform"
	"github.com/go-drift/driftgif/pkg/rendering"
)

// Callback is implemented by the host surface a drawable is placed in.
type Callback interface {
	// InvalidateDrawable asks the host to repaint d soon.
	InvalidateDrawable(d *Drawable)
}

// CallbackFunc adapts a plain function to Callback.
type CallbackFunc func(d *Drawable)

// InvalidateDrawable calls f(d).
func (f CallbackFunc) InvalidateDrawable(d *Drawable) { f(d) }

// Option configures a drawable at construction.
type Option func(*Drawable)

// WithCallback attaches the drawable to a host surface.
func WithCallback(cb Callback) Option {
	return func(d *Drawable) { d.callback = cb }
}

// WithShouldContinue replaces the attachment check run on every completion.
func WithShouldContinue(fn func() bool) Option {
	return func(d *Drawable) { d.shouldContinue = fn }
}

// WithPaint sets the initial paint parameters.
func WithPaint(p rendering.Paint) Option {
	return func(d *Drawable) { d.paint = p }
}

// Drawable plays an animated GIF into a host surface.
//
// Playback runs while the drawable is both started and visible. While
// running, exactly one frame request is outstanding at a time: each
// completion adopts the delivered frame, asks the host to repaint and
// immediately requests the next one.
//
// A Drawable is not safe for concurrent use. Every method, including
// OnFrameReady, must be called from the host's UI thread.
type Drawable struct {
	state    *State
	decoder  gifdecoder.Decoder
	producer frames.Producer

	paint          rendering.Paint
	callback       Callback
	shouldContinue func() bool

	currentFrame *frames.Frame
	isRunning    bool
	isStarted    bool
	isVisible    bool
	isRecycled   bool

	// requestPending is set from RequestNextFrame until its completion runs.
	// A restart while a stale request is outstanding reuses that request.
	requestPending bool
}

var _ frames.Callback = (*Drawable)(nil)

// New creates the State for cfg and a first drawable bound to it.
func New(cfg StateConfig, opts ...Option) (*Drawable, error) {
	s, err := NewState(cfg)
	if err != nil {
		return nil, err
	}
	return s.NewDrawable(opts...), nil
}

func newDrawable(s *State, opts ...Option) *Drawable {
	d := &Drawable{
		state: s,
		paint: rendering.DefaultPaint(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.decoder = s.decoder()
	if err := d.decoder.Bind(s.payload.id, s.payload.header, s.payload.data); err != nil {
		d.report("gifdrawable.New", errors.KindDecode, err)
	}
	targetWidth, targetHeight := s.TargetSize()
	d.producer = s.producer(frames.ManagerConfig{
		PayloadID:      s.payload.id,
		Decoder:        d.decoder,
		Buffers:        s.payload.buffers,
		Transformation: d.FrameTransformation,
		TargetWidth:    targetWidth,
		TargetHeight:   targetHeight,
		Cache:          s.payload.cache,
	})
	s.refs++
	return d
}

// Clone returns a new drawable sharing this drawable's State.
func (d *Drawable) Clone(opts ...Option) *Drawable {
	return d.state.NewDrawable(opts...)
}

// ConstantState returns the State this drawable currently uses.
func (d *Drawable) ConstantState() *State {
	return d.state
}

// Mutate detaches the drawable from a State it shares with other drawables,
// so later SetFrameTransformation calls only affect this drawable. The
// payload stays shared. A recycled drawable no longer holds a reference and
// is left as is.
func (d *Drawable) Mutate() *Drawable {
	if d.state.refs > 1 && !d.isRecycled {
		d.state.refs--
		d.state = CopyState(d.state)
		d.state.refs = 1
	}
	return d
}

// SetFrameTransformation replaces the frame transformation and the reported
// intrinsic size. Requests already in flight keep the transformation they
// were issued with.
func (d *Drawable) SetFrameTransformation(t frames.Transformation, finalWidth, finalHeight int) {
	d.state.transformation = t
	d.state.finalWidth = finalWidth
	d.state.finalHeight = finalHeight
}

// FrameTransformation returns the current frame transformation.
func (d *Drawable) FrameTransformation() frames.Transformation {
	return d.state.FrameTransformation()
}

// Data returns the encoded payload.
func (d *Drawable) Data() []byte {
	return d.state.Data()
}

// SetCallback attaches the drawable to a host surface, or detaches it when
// cb is nil.
func (d *Drawable) SetCallback(cb Callback) {
	d.callback = cb
}

// Callback returns the attached host surface, if any.
func (d *Drawable) Callback() Callback {
	return d.callback
}

// SetShouldContinue replaces the attachment check run on every completion.
// Nil restores the default, which checks that a Callback is attached.
func (d *Drawable) SetShouldContinue(fn func() bool) {
	d.shouldContinue = fn
}

// Start asks for playback. It begins immediately if the drawable is visible.
func (d *Drawable) Start() {
	d.isStarted = true
	if d.isVisible {
		d.startRunning()
	}
}

// Stop halts playback. A request in flight is allowed to complete and its
// frame is discarded.
func (d *Drawable) Stop() {
	d.isStarted = false
	d.stopRunning()
}

// SetVisible records whether the host would render the drawable. Hiding it
// stops playback regardless of Start; showing a started drawable resumes
// playback. It returns whether the visibility changed.
func (d *Drawable) SetVisible(visible bool) bool {
	changed := d.isVisible != visible
	d.isVisible = visible
	if !visible {
		d.stopRunning()
	} else if d.isStarted {
		d.startRunning()
	}
	return changed
}

func (d *Drawable) startRunning() {
	if d.isRecycled {
		d.report("gifdrawable.Start", errors.KindRecycled, errors.ErrRecycled)
		return
	}
	if d.isRunning {
		return
	}
	d.isRunning = true
	d.requestNext()
	d.InvalidateSelf()
}

func (d *Drawable) requestNext() {
	if d.requestPending {
		return
	}
	d.requestPending = true
	d.producer.RequestNextFrame(d)
}

func (d *Drawable) stopRunning() {
	d.isRunning = false
}

// OnFrameReady is the producer's completion callback. A nil frame means the
// producer failed to produce one; the loop still advances.
func (d *Drawable) OnFrameReady(frame *frames.Frame) {
	d.requestPending = false
	if d.isRecycled {
		frame.Release()
		return
	}
	if !d.attached() {
		d.report("gifdrawable.OnFrameReady", errors.KindDetached, errors.ErrDetached)
		frame.Release()
		d.Stop()
		return
	}
	if !d.isRunning {
		frame.Release()
		return
	}

	if frame != nil {
		previous := d.currentFrame
		d.currentFrame = frame
		if previous != frame {
			previous.Release()
		}
		d.InvalidateSelf()
	} else {
		errors.Debugf("gifdrawable.OnFrameReady", "%s: no frame delivered", d.state.payload.id)
	}

	d.requestNext()
}

func (d *Drawable) attached() bool {
	if d.shouldContinue != nil {
		return d.shouldContinue()
	}
	return d.callback != nil
}

// InvalidateSelf asks the host, if any, to repaint.
func (d *Drawable) InvalidateSelf() {
	if d.callback != nil {
		d.callback.InvalidateDrawable(d)
	}
}

// Draw blits the current frame at the canvas origin. Nothing is drawn before
// the first frame arrives.
func (d *Drawable) Draw(canvas rendering.Canvas) {
	if d.currentFrame == nil || d.currentFrame.Image == nil {
		return
	}
	canvas.DrawImage(d.currentFrame.Image, rendering.Offset{}, d.paint)
}

// SetAlpha sets the opacity used for future draws.
func (d *Drawable) SetAlpha(alpha uint8) {
	d.paint.Alpha = rendering.AlphaFromByte(alpha)
}

// SetColorFilter sets the color filter used for future draws. Nil removes it.
func (d *Drawable) SetColorFilter(filter rendering.ColorFilter) {
	d.paint.ColorFilter = filter
}

// Paint returns the current paint parameters.
func (d *Drawable) Paint() rendering.Paint {
	return d.paint
}

// Opacity reports how the drawable composites: translucent when the payload
// contains transparency, opaque otherwise. A recycled drawable draws nothing
// and reports transparent.
func (d *Drawable) Opacity() rendering.PixelFormat {
	if d.isRecycled {
		return rendering.PixelFormatTransparent
	}
	if d.decoder.ReportsTransparency() {
		return rendering.PixelFormatTranslucent
	}
	return rendering.PixelFormatOpaque
}

// IntrinsicWidth returns the final width from the State, independent of the
// decoded frame size.
func (d *Drawable) IntrinsicWidth() int {
	return d.state.finalWidth
}

// IntrinsicHeight returns the final height from the State.
func (d *Drawable) IntrinsicHeight() int {
	return d.state.finalHeight
}

// CurrentFrame returns the frame drawn on the next paint, or nil.
func (d *Drawable) CurrentFrame() *frames.Frame {
	return d.currentFrame
}

// IsRunning reports whether the request loop is active.
func (d *Drawable) IsRunning() bool { return d.isRunning }

// IsStarted reports whether the host asked for playback.
func (d *Drawable) IsStarted() bool { return d.isStarted }

// IsVisible reports whether the host would render the drawable.
func (d *Drawable) IsVisible() bool { return d.isVisible }

// IsRecycled reports whether Recycle has been called.
func (d *Drawable) IsRecycled() bool { return d.isRecycled }

// PlaybackState summarizes the lifecycle flags.
func (d *Drawable) PlaybackState() platform.PlaybackState {
	switch {
	case d.isRecycled:
		return platform.PlaybackStateReleased
	case d.isRunning:
		return platform.PlaybackStatePlaying
	case d.isStarted:
		return platform.PlaybackStatePaused
	default:
		return platform.PlaybackStateIdle
	}
}

// Recycle permanently stops playback and releases frame resources. A
// request in flight is not cancelled; its completion is discarded. Recycle
// may be called more than once.
func (d *Drawable) Recycle() {
	if d.isRecycled {
		return
	}
	d.isRecycled = true
	d.isRunning = false
	d.currentFrame.Release()
	d.currentFrame = nil
	d.producer.ReleaseResources()
	d.state.refs--
}

func (d *Drawable) report(op string, kind errors.ErrorKind, err error) {
	errors.Report(&errors.PlaybackError{
		Op:        op,
		Kind:      kind,
		PayloadID: d.state.payload.id,
		Err:       err,
	})
}
