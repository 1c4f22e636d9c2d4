package rendering

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ImageCanvas is a Canvas backed by an in-memory RGBA image.
//
// It performs a straight blit: images are composited with source-over,
// modulated by the paint alpha after the color filter has been applied.
type ImageCanvas struct {
	dst *image.RGBA
}

// NewImageCanvas allocates a canvas of the given pixel size.
func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{dst: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewImageCanvasFor wraps an existing image. Drawing mutates dst.
func NewImageCanvasFor(dst *image.RGBA) *ImageCanvas {
	return &ImageCanvas{dst: dst}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.dst
}

// Size returns the size of the canvas in pixels.
func (c *ImageCanvas) Size() Size {
	b := c.dst.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Clear fills the entire canvas with the given color.
func (c *ImageCanvas) Clear(col Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// DrawImage draws img with its top-left corner at position.
func (c *ImageCanvas) DrawImage(img image.Image, position Offset, paint Paint) {
	if img == nil {
		return
	}
	alpha := paint.EffectiveAlpha()
	if alpha == 0 {
		return
	}
	src := img
	if paint.ColorFilter != nil {
		src = applyFilter(img, paint.ColorFilter)
	}
	sb := src.Bounds()
	origin := image.Pt(int(position.X), int(position.Y))
	r := image.Rectangle{Min: origin, Max: origin.Add(sb.Size())}
	if alpha >= 1 {
		draw.Draw(c.dst, r, src, sb.Min, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: clampByte(alpha * maxByte)})
	draw.DrawMask(c.dst, r, src, sb.Min, mask, image.Point{}, draw.Over)
}

func applyFilter(img image.Image, f ColorFilter) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x, y, f.Filter(px))
		}
	}
	return out
}
