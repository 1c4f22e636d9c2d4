package gifdecoder

import (
	"fmt"
	"image"
	"image/gif"
	"sync"
	"time"

	"golang.org/x/image/draw"

	"github.com/go-drift/driftgif/pkg/errors"
)

// Decoder walks the frames of a bound payload.
//
// Advance moves the cursor; NextFrame renders the frame under the cursor.
// A decoder is used by at most one goroutine at a time, except for
// ReportsTransparency which only reads immutable header data.
type Decoder interface {
	// Bind attaches the decoder to a payload. A nil header is parsed from data.
	Bind(id string, header *Header, data []byte) error
	// Advance moves to the next frame, wrapping to the first after the last.
	Advance()
	// CurrentFrameIndex returns the frame under the cursor, or -1 before the
	// first Advance.
	CurrentFrameIndex() int
	// FrameCount returns the number of frames in the payload.
	FrameCount() int
	// Delay returns the display duration of frame n.
	Delay(n int) time.Duration
	// NextDelay returns the display duration of the frame under the cursor.
	NextDelay() time.Duration
	// NextFrame renders the frame under the cursor into a buffer obtained
	// from the decoder's BufferProvider.
	NextFrame() (*image.RGBA, error)
	// ReportsTransparency reports whether rendered frames may contain
	// transparent pixels.
	ReportsTransparency() bool
	// Clear drops the compositing state. The decoder must be bound again
	// before further use.
	Clear()
}

// GIFDecoder is the default Decoder for GIF payloads.
type GIFDecoder struct {
	mu       sync.Mutex
	provider BufferProvider

	id     string
	header *Header

	index    int
	rendered int
	canvas   *image.RGBA
	restore  *image.RGBA
}

var _ Decoder = (*GIFDecoder)(nil)

// New returns an unbound decoder drawing into buffers from provider.
// A nil provider allocates a fresh buffer for every frame.
func New(provider BufferProvider) *GIFDecoder {
	if provider == nil {
		provider = AllocProvider{}
	}
	return &GIFDecoder{provider: provider, index: -1, rendered: -1}
}

// Bind attaches the decoder to a payload.
func (d *GIFDecoder) Bind(id string, header *Header, data []byte) error {
	if header == nil {
		h, err := ParseHeader(data)
		if err != nil {
			return err
		}
		header = h
	}
	if header.anim == nil || header.FrameCount == 0 {
		return errors.ErrNoFrames
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.id = id
	d.header = header
	d.index = -1
	d.rendered = -1
	d.canvas = nil
	d.restore = nil
	return nil
}

// ID returns the payload id the decoder is bound to.
func (d *GIFDecoder) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// Advance moves to the next frame, wrapping to the first after the last.
func (d *GIFDecoder) Advance() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil {
		return
	}
	d.index = (d.index + 1) % d.header.FrameCount
}

// CurrentFrameIndex returns the frame under the cursor.
func (d *GIFDecoder) CurrentFrameIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// FrameCount returns the number of frames, or 0 when unbound.
func (d *GIFDecoder) FrameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil {
		return 0
	}
	return d.header.FrameCount
}

// Delay returns the display duration of frame n, or 0 when out of range.
func (d *GIFDecoder) Delay(n int) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil || n < 0 || n >= len(d.header.Delays) {
		return 0
	}
	return d.header.Delays[n]
}

// NextDelay returns the display duration of the frame under the cursor.
func (d *GIFDecoder) NextDelay() time.Duration {
	return d.Delay(d.CurrentFrameIndex())
}

// ReportsTransparency reports whether frames may contain transparent pixels.
func (d *GIFDecoder) ReportsTransparency() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.header != nil && d.header.Transparent
}

// NextFrame renders the frame under the cursor.
func (d *GIFDecoder) NextFrame() (*image.RGBA, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.header == nil {
		return nil, errors.ErrCleared
	}
	if d.index < 0 {
		return nil, fmt.Errorf("gifdecoder %s: NextFrame before Advance", d.id)
	}

	if d.canvas == nil {
		d.canvas = image.NewRGBA(image.Rect(0, 0, d.header.Width, d.header.Height))
	}
	if d.index != d.rendered+1 {
		d.rendered = -1
	}
	for d.rendered < d.index {
		d.compose(d.rendered + 1)
	}

	out := d.provider.Obtain(d.header.Width, d.header.Height)
	draw.Draw(out, out.Bounds(), d.canvas, image.Point{}, draw.Src)
	return out, nil
}

// compose draws frame i onto the canvas after applying the disposal of the
// frame before it.
func (d *GIFDecoder) compose(i int) {
	anim := d.header.anim
	if i == 0 {
		clearRect(d.canvas, d.canvas.Bounds())
	} else {
		prev := i - 1
		switch disposal(anim, prev) {
		case gif.DisposalBackground:
			clearRect(d.canvas, anim.Image[prev].Bounds())
		case gif.DisposalPrevious:
			if d.restore != nil {
				draw.Draw(d.canvas, d.canvas.Bounds(), d.restore, image.Point{}, draw.Src)
			}
		}
	}

	if disposal(anim, i) == gif.DisposalPrevious {
		if d.restore == nil {
			d.restore = image.NewRGBA(d.canvas.Bounds())
		}
		draw.Draw(d.restore, d.restore.Bounds(), d.canvas, image.Point{}, draw.Src)
	}

	frame := anim.Image[i]
	draw.Draw(d.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	d.rendered = i
}

// Clear drops the compositing state and unbinds the decoder.
func (d *GIFDecoder) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.header = nil
	d.canvas = nil
	d.restore = nil
	d.index = -1
	d.rendered = -1
}

func disposal(anim *gif.GIF, i int) byte {
	if i < len(anim.Disposal) {
		return anim.Disposal[i]
	}
	return gif.DisposalNone
}

func clearRect(img *image.RGBA, r image.Rectangle) {
	draw.Draw(img, r, image.Transparent, image.Point{}, draw.Src)
}
