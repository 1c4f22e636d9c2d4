package gifdecoder

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"time"

	"github.com/go-drift/driftgif/pkg/errors"
)

// MinFrameDelay is used for frames whose declared delay is 10ms or less,
// matching how browsers play such files.
const MinFrameDelay = 100 * time.Millisecond

// Header is the parsed, immutable description of a GIF payload.
type Header struct {
	// Width and Height are the logical screen size.
	Width  int
	Height int
	// FrameCount is the number of image frames.
	FrameCount int
	// LoopCount is the container's loop count: 0 loops forever, -1 plays once.
	LoopCount int
	// Delays holds the display duration of each frame.
	Delays []time.Duration
	// Transparent reports whether any frame can leave pixels uncovered or
	// uses a transparent palette entry.
	Transparent bool

	anim *gif.GIF
}

// ParseHeader parses the container structure of data.
func ParseHeader(data []byte) (*Header, error) {
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse gif: %w", err)
	}
	if len(anim.Image) == 0 {
		return nil, errors.ErrNoFrames
	}

	h := &Header{
		Width:      anim.Config.Width,
		Height:     anim.Config.Height,
		FrameCount: len(anim.Image),
		LoopCount:  anim.LoopCount,
		Delays:     make([]time.Duration, len(anim.Image)),
		anim:       anim,
	}
	if h.Width == 0 || h.Height == 0 {
		b := anim.Image[0].Bounds()
		h.Width, h.Height = b.Max.X, b.Max.Y
	}
	screen := image.Rect(0, 0, h.Width, h.Height)
	for i, frame := range anim.Image {
		h.Delays[i] = frameDelay(anim.Delay, i)
		if !frame.Bounds().Eq(screen) || hasTransparentEntry(frame) {
			h.Transparent = true
		}
	}
	return h, nil
}

func frameDelay(delays []int, i int) time.Duration {
	if i >= len(delays) || delays[i] <= 1 {
		return MinFrameDelay
	}
	return time.Duration(delays[i]) * 10 * time.Millisecond
}

func hasTransparentEntry(frame *image.Paletted) bool {
	for _, c := range frame.Palette {
		if _, _, _, a := c.RGBA(); a < 0xffff {
			return true
		}
	}
	return false
}

// Duration returns the total time of one pass through the animation.
func (h *Header) Duration() time.Duration {
	var total time.Duration
	for _, d := range h.Delays {
		total += d
	}
	return total
}
