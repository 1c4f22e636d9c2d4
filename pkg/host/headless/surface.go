// Package headless hosts drawables on an offscreen surface.
//
// A Surface plays the role of a window: drawables placed on it report
// invalidations, and the surface repaints them into an in-memory image on
// the UI thread. It is used by the render command and by tests.
package headless

import (
	"image"
	"slices"

	"github.com/go-drift/driftgif/pkg/gifdrawable"
	"github.com/go-drift/driftgif/pkg/platform"
	"github.com/go-drift/driftgif/pkg/rendering"
)

// Surface is an offscreen host for drawables.
//
// All methods must be called on the UI thread.
type Surface struct {
	canvas     *rendering.ImageCanvas
	background rendering.Color
	schedule   func(func()) bool

	placements []placement
	attached   bool
	visible    bool

	needsPaint     bool
	paintScheduled bool
	invalidations  int
	paints         int
	onPaint        func(img *image.RGBA)
}

type placement struct {
	drawable *gifdrawable.Drawable
	origin   rendering.Offset
}

// Option configures a Surface.
type Option func(*Surface)

// WithBackground sets the color the surface is cleared to before each paint.
func WithBackground(c rendering.Color) Option {
	return func(s *Surface) { s.background = c }
}

// WithScheduler replaces platform.Dispatch as the way paints are scheduled.
func WithScheduler(schedule func(func()) bool) Option {
	return func(s *Surface) { s.schedule = schedule }
}

// OnPaint registers fn to receive the surface image after every paint. The
// image is reused; fn must copy it to keep it.
func OnPaint(fn func(img *image.RGBA)) Option {
	return func(s *Surface) { s.onPaint = fn }
}

// New creates an attached, hidden surface of the given pixel size.
func New(width, height int, opts ...Option) *Surface {
	s := &Surface{
		canvas:     rendering.NewImageCanvas(width, height),
		background: rendering.ColorTransparent,
		schedule:   platform.Dispatch,
		attached:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add places d at origin. The surface becomes the drawable's callback and
// its attachment predicate, and d takes on the surface's visibility.
func (s *Surface) Add(d *gifdrawable.Drawable, origin rendering.Offset) {
	if s.index(d) >= 0 {
		return
	}
	s.placements = append(s.placements, placement{drawable: d, origin: origin})
	d.SetCallback(s)
	d.SetShouldContinue(func() bool { return s.holds(d) })
	d.SetVisible(s.visible)
	s.InvalidateDrawable(d)
}

// Remove takes d off the surface. Its next completion stops it.
func (s *Surface) Remove(d *gifdrawable.Drawable) {
	i := s.index(d)
	if i < 0 {
		return
	}
	s.placements = slices.Delete(s.placements, i, i+1)
	d.SetCallback(nil)
	s.markNeedsPaint()
}

// Drawables returns the placed drawables in paint order.
func (s *Surface) Drawables() []*gifdrawable.Drawable {
	out := make([]*gifdrawable.Drawable, len(s.placements))
	for i, p := range s.placements {
		out[i] = p.drawable
	}
	return out
}

// SetVisible shows or hides the surface and every drawable on it.
func (s *Surface) SetVisible(visible bool) {
	s.visible = visible
	for _, p := range s.placements {
		p.drawable.SetVisible(visible)
	}
	if visible {
		s.markNeedsPaint()
	}
}

// Visible reports whether the surface is shown.
func (s *Surface) Visible() bool { return s.visible }

// SetAttached simulates the surface being torn down or re-created by its
// window system. While detached, drawables on it stop at their next
// completion.
func (s *Surface) SetAttached(attached bool) {
	s.attached = attached
}

// Attached reports whether the surface is attached to its window system.
func (s *Surface) Attached() bool { return s.attached }

// Follow mirrors l onto the surface: shown while l is visible, detached
// while l is detached. It applies the current state immediately and returns
// a function that stops following. l must change state on the UI thread.
func (s *Surface) Follow(l *platform.Lifecycle) func() {
	apply := func(state platform.LifecycleState) {
		s.SetAttached(state != platform.LifecycleStateDetached)
		s.SetVisible(state.Visible())
	}
	apply(l.State())
	return l.AddHandler(apply)
}

func (s *Surface) holds(d *gifdrawable.Drawable) bool {
	return s.attached && s.index(d) >= 0
}

func (s *Surface) index(d *gifdrawable.Drawable) int {
	return slices.IndexFunc(s.placements, func(p placement) bool { return p.drawable == d })
}

// InvalidateDrawable schedules a repaint. Repeated invalidations before the
// paint runs are coalesced.
func (s *Surface) InvalidateDrawable(*gifdrawable.Drawable) {
	s.invalidations++
	s.markNeedsPaint()
}

func (s *Surface) markNeedsPaint() {
	s.needsPaint = true
	if s.paintScheduled || s.schedule == nil {
		return
	}
	if s.schedule(s.paintScheduledFrame) {
		s.paintScheduled = true
	}
}

func (s *Surface) paintScheduledFrame() {
	s.paintScheduled = false
	s.Paint()
}

// NeedsPaint reports whether an invalidation has not been painted yet.
func (s *Surface) NeedsPaint() bool { return s.needsPaint }

// Paint repaints the surface if it is visible and needs it. It returns
// whether a paint happened.
func (s *Surface) Paint() bool {
	if !s.needsPaint || !s.visible {
		return false
	}
	s.needsPaint = false
	s.canvas.Clear(s.background)
	for _, p := range s.placements {
		p.drawable.Draw(offsetCanvas{Canvas: s.canvas, origin: p.origin})
	}
	s.paints++
	if s.onPaint != nil {
		s.onPaint(s.canvas.Image())
	}
	return true
}

// Image returns the surface's backing image. It changes on every paint.
func (s *Surface) Image() *image.RGBA { return s.canvas.Image() }

// Snapshot returns a copy of the last painted image.
func (s *Surface) Snapshot() *image.RGBA {
	src := s.canvas.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// Invalidations returns how many repaints drawables asked for.
func (s *Surface) Invalidations() int { return s.invalidations }

// Paints returns how many paints ran.
func (s *Surface) Paints() int { return s.paints }

// Close recycles every drawable on the surface and removes them.
func (s *Surface) Close() {
	for _, p := range s.placements {
		p.drawable.SetCallback(nil)
		p.drawable.Recycle()
	}
	s.placements = nil
}

// offsetCanvas translates every draw by origin.
type offsetCanvas struct {
	rendering.Canvas
	origin rendering.Offset
}

func (c offsetCanvas) DrawImage(img image.Image, position rendering.Offset, paint rendering.Paint) {
	c.Canvas.DrawImage(img, rendering.Offset{X: position.X + c.origin.X, Y: position.Y + c.origin.Y}, paint)
}
