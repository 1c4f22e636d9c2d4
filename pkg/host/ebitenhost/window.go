// Package ebitenhost shows drawables in a desktop window using Ebitengine.
//
// The game loop is the UI thread: frame completions and repaints are queued
// on a platform.Looper and drained at the start of every Update. Window focus
// drives a platform.Lifecycle the surface follows: losing focus makes the
// window inactive, or paused when PauseWhenUnfocused is set, which stops
// decoding.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-drift/driftgif/pkg/gifdrawable"
	"github.com/go-drift/driftgif/pkg/host/headless"
	"github.com/go-drift/driftgif/pkg/platform"
	"github.com/go-drift/driftgif/pkg/rendering"
)

// Config configures a Window.
type Config struct {
	Title string
	// Width and Height size both the window and the surface drawables are
	// painted on.
	Width  int
	Height int
	// Background is the surface clear color.
	Background rendering.Color
	// PauseWhenUnfocused hides drawables while the window lacks focus.
	PauseWhenUnfocused bool
}

// Window is an ebiten.Game hosting an offscreen surface.
type Window struct {
	cfg       Config
	looper    *platform.Looper
	lifecycle *platform.Lifecycle
	surface   *headless.Surface
	unfollow  func()

	screen  *ebiten.Image
	focused bool
	closed  bool
}

var _ ebiten.Game = (*Window)(nil)

// New creates a window and registers its looper as the UI-thread dispatcher.
func New(cfg Config) *Window {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 320, 240
	}
	if cfg.Title == "" {
		cfg.Title = "driftgif"
	}
	w := &Window{
		cfg:       cfg,
		looper:    platform.NewLooper(),
		lifecycle: platform.NewLifecycle(),
		focused:   true,
	}
	w.surface = headless.New(cfg.Width, cfg.Height,
		headless.WithBackground(cfg.Background),
		headless.WithScheduler(w.looper.Post),
	)
	platform.RegisterDispatch(w.looper.Post)
	return w
}

// Add places d on the window at origin. Must be called before Run or from
// the game loop.
func (w *Window) Add(d *gifdrawable.Drawable, origin rendering.Offset) {
	w.surface.Add(d, origin)
}

// Surface returns the surface drawables are painted on.
func (w *Window) Surface() *headless.Surface {
	return w.surface
}

// Lifecycle returns the lifecycle the window reports focus changes to.
func (w *Window) Lifecycle() *platform.Lifecycle {
	return w.lifecycle
}

// Run opens the window and blocks until it is closed. It must be called from
// the main goroutine.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.cfg.Width, w.cfg.Height)
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	w.unfollow = w.surface.Follow(w.lifecycle)
	defer w.shutdown()
	return ebiten.RunGame(w)
}

// Close recycles every drawable and ends the game loop at the next Update.
func (w *Window) Close() {
	w.looper.Post(w.shutdown)
}

func (w *Window) shutdown() {
	if w.closed {
		return
	}
	w.closed = true
	if w.unfollow != nil {
		w.unfollow()
	}
	w.surface.Close()
	w.looper.Quit()
	platform.RegisterDispatch(nil)
}

// Update drains the UI queue and tracks focus.
func (w *Window) Update() error {
	if focused := ebiten.IsFocused(); focused != w.focused {
		w.focused = focused
		switch {
		case focused:
			w.lifecycle.SetState(platform.LifecycleStateResumed)
		case w.cfg.PauseWhenUnfocused:
			w.lifecycle.SetState(platform.LifecycleStatePaused)
		default:
			w.lifecycle.SetState(platform.LifecycleStateInactive)
		}
	}
	w.looper.Drain()
	if w.closed {
		return ebiten.Termination
	}
	return nil
}

// Draw uploads the surface and scales it into the window.
func (w *Window) Draw(screen *ebiten.Image) {
	img := w.surface.Image()
	b := img.Bounds()
	if w.screen == nil || w.screen.Bounds().Dx() != b.Dx() || w.screen.Bounds().Dy() != b.Dy() {
		w.screen = ebiten.NewImage(b.Dx(), b.Dy())
	}
	w.screen.WritePixels(img.Pix)

	sb := screen.Bounds()
	dst, scale := rendering.FitContain(
		rendering.Size{Width: float64(sb.Dx()), Height: float64(sb.Dy())},
		rendering.Size{Width: float64(b.Dx()), Height: float64(b.Dy())},
	)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(dst.Left, dst.Top)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(w.screen, op)
}

// Layout uses the outside size so the surface is scaled to fit.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
