package frames

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/go-drift/driftgif/pkg/gifdecoder"
	"github.com/go-drift/driftgif/pkg/rendering"
)

// Transformation maps a decoded frame to the image that will be displayed.
//
// Implementations must not modify src. They may return src unchanged, or a
// new image obtained from buffers.
type Transformation interface {
	Transform(src *image.RGBA, outWidth, outHeight int, buffers gifdecoder.BufferProvider) *image.RGBA
	// ID identifies the transformation for frame caching. Transformations
	// with equal IDs must produce equal output for equal input.
	ID() string
}

// Identity returns frames unchanged.
type Identity struct{}

// Transform returns src.
func (Identity) Transform(src *image.RGBA, _, _ int, _ gifdecoder.BufferProvider) *image.RGBA {
	return src
}

// ID returns "identity".
func (Identity) ID() string { return "identity" }

// Interpolator maps a filter quality to an x/image scaler.
func Interpolator(q rendering.FilterQuality) draw.Interpolator {
	switch q {
	case rendering.FilterQualityNone:
		return draw.NearestNeighbor
	case rendering.FilterQualityLow:
		return draw.ApproxBiLinear
	case rendering.FilterQualityMedium:
		return draw.BiLinear
	default:
		return draw.CatmullRom
	}
}

// Scale stretches frames to exactly outWidth x outHeight.
type Scale struct {
	Quality rendering.FilterQuality
}

// Transform scales src.
func (s Scale) Transform(src *image.RGBA, outWidth, outHeight int, buffers gifdecoder.BufferProvider) *image.RGBA {
	if !needsResize(src, outWidth, outHeight) {
		return src
	}
	dst := obtainCleared(buffers, outWidth, outHeight)
	Interpolator(s.Quality).Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ID identifies the scale mode and quality.
func (s Scale) ID() string { return fmt.Sprintf("scale:%d", s.Quality) }

// FitCenter scales frames to fit inside the output box while keeping their
// aspect ratio, centring them on a transparent background.
type FitCenter struct {
	Quality rendering.FilterQuality
}

// Transform fits src.
func (f FitCenter) Transform(src *image.RGBA, outWidth, outHeight int, buffers gifdecoder.BufferProvider) *image.RGBA {
	if !needsResize(src, outWidth, outHeight) {
		return src
	}
	sw, sh := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	scale := min(float64(outWidth)/sw, float64(outHeight)/sh)
	w, h := int(sw*scale+0.5), int(sh*scale+0.5)
	x, y := (outWidth-w)/2, (outHeight-h)/2

	dst := obtainCleared(buffers, outWidth, outHeight)
	Interpolator(f.Quality).Scale(dst, image.Rect(x, y, x+w, y+h), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ID identifies the fit mode and quality.
func (f FitCenter) ID() string { return fmt.Sprintf("fit_center:%d", f.Quality) }

// CenterCrop scales frames to cover the output box while keeping their
// aspect ratio, cropping whatever overflows.
type CenterCrop struct {
	Quality rendering.FilterQuality
}

// Transform crops src.
func (c CenterCrop) Transform(src *image.RGBA, outWidth, outHeight int, buffers gifdecoder.BufferProvider) *image.RGBA {
	if !needsResize(src, outWidth, outHeight) {
		return src
	}
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	scale := max(float64(outWidth)/sw, float64(outHeight)/sh)
	cw, ch := int(float64(outWidth)/scale+0.5), int(float64(outHeight)/scale+0.5)
	cx, cy := sb.Min.X+(sb.Dx()-cw)/2, sb.Min.Y+(sb.Dy()-ch)/2

	dst := obtainCleared(buffers, outWidth, outHeight)
	Interpolator(c.Quality).Scale(dst, dst.Bounds(), src, image.Rect(cx, cy, cx+cw, cy+ch), draw.Src, nil)
	return dst
}

// ID identifies the crop mode and quality.
func (c CenterCrop) ID() string { return fmt.Sprintf("center_crop:%d", c.Quality) }

func needsResize(src *image.RGBA, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	b := src.Bounds()
	return b.Dx() != w || b.Dy() != h
}

func obtainCleared(buffers gifdecoder.BufferProvider, w, h int) *image.RGBA {
	if buffers == nil {
		buffers = gifdecoder.AllocProvider{}
	}
	dst := buffers.Obtain(w, h)
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return dst
}
