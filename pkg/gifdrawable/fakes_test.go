package gifdrawable

import (
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/driftgif/pkg/errors"
	"github.com/go-drift/driftgif/pkg/frames"
	"github.com/go-drift/driftgif/pkg/gifdecoder"
)

// fakeProducer queues requests so tests decide when and how each completes.
type fakeProducer struct {
	pending        []frames.Callback
	requests       int
	maxOutstanding int
	releases       int
	cfg            frames.ManagerConfig
}

func (p *fakeProducer) RequestNextFrame(cb frames.Callback) {
	p.requests++
	p.pending = append(p.pending, cb)
	if len(p.pending) > p.maxOutstanding {
		p.maxOutstanding = len(p.pending)
	}
}

func (p *fakeProducer) ReleaseResources() { p.releases++ }

func (p *fakeProducer) outstanding() int { return len(p.pending) }

// complete delivers frame to the oldest outstanding request, the way the UI
// thread would run a dispatched completion.
func (p *fakeProducer) complete(t *testing.T, frame *frames.Frame) {
	t.Helper()
	if len(p.pending) == 0 {
		t.Fatal("complete called with no outstanding request")
	}
	cb := p.pending[0]
	p.pending = p.pending[1:]
	cb.OnFrameReady(frame)
}

type stubDecoder struct {
	bound       int
	transparent bool
	bindErr     error
}

func (d *stubDecoder) Bind(string, *gifdecoder.Header, []byte) error {
	d.bound++
	return d.bindErr
}

func (d *stubDecoder) Advance()                        {}
func (d *stubDecoder) CurrentFrameIndex() int          { return 0 }
func (d *stubDecoder) FrameCount() int                 { return 1 }
func (d *stubDecoder) Delay(int) time.Duration         { return 0 }
func (d *stubDecoder) NextDelay() time.Duration        { return 0 }
func (d *stubDecoder) NextFrame() (*image.RGBA, error) { return nil, errors.ErrCleared }
func (d *stubDecoder) ReportsTransparency() bool       { return d.transparent }
func (d *stubDecoder) Clear()                          {}

// harness builds a State whose drawables get fake collaborators.
type harness struct {
	state     *State
	producers []*fakeProducer
	decoders  []*stubDecoder

	transparent bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	s, err := NewState(StateConfig{
		ID:     "test-payload",
		Header: &gifdecoder.Header{Width: 4, Height: 4, FrameCount: 3},
		Data:   []byte("payload"),
		NewDecoder: func(gifdecoder.BufferProvider) gifdecoder.Decoder {
			dec := &stubDecoder{transparent: h.transparent}
			h.decoders = append(h.decoders, dec)
			return dec
		},
		NewProducer: func(cfg frames.ManagerConfig) frames.Producer {
			p := &fakeProducer{cfg: cfg}
			h.producers = append(h.producers, p)
			return p
		},
	})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	h.state = s
	return h
}

// newDrawable returns an attached drawable and its producer.
func (h *harness) newDrawable() (*Drawable, *fakeProducer, *invalidations) {
	inv := &invalidations{}
	d := h.state.NewDrawable(WithCallback(inv))
	return d, h.producers[len(h.producers)-1], inv
}

type invalidations struct {
	count int
}

func (i *invalidations) InvalidateDrawable(*Drawable) { i.count++ }

// releaseCounter hands out frames whose release is counted.
type releaseCounter struct {
	mu       sync.Mutex
	released int
}

func (r *releaseCounter) frame(index int) *frames.Frame {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = uint8(index*40), 255
	}
	return frames.NewFrame(img, index, 0, func(*image.RGBA) {
		r.mu.Lock()
		r.released++
		r.mu.Unlock()
	})
}

func (r *releaseCounter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

type recordingHandler struct {
	mu     sync.Mutex
	errors []*errors.PlaybackError
}

func (h *recordingHandler) HandleError(err *errors.PlaybackError) {
	h.mu.Lock()
	h.errors = append(h.errors, err)
	h.mu.Unlock()
}

func (h *recordingHandler) HandlePanic(*errors.PanicError) {}

func (h *recordingHandler) kinds() []errors.ErrorKind {
	h.mu.Lock()
	defer h.mu.Unlock()
	kinds := make([]errors.ErrorKind, 0, len(h.errors))
	for _, e := range h.errors {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func installRecorder(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	prev := errors.DefaultHandler
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return h
}

func solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
