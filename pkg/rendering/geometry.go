package rendering

import (
	"image"
	"math"
)

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// ImageRect rounds the rectangle to integer pixel bounds.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

// FitContain returns the rectangle that shows content centered inside view at
// the largest uniform scale that keeps all of it visible, and that scale.
func FitContain(view, content Size) (Rect, float64) {
	if content.Width <= 0 || content.Height <= 0 {
		return Rect{}, 0
	}
	scale := math.Min(view.Width/content.Width, view.Height/content.Height)
	w, h := content.Width*scale, content.Height*scale
	return RectFromLTWH((view.Width-w)/2, (view.Height-h)/2, w, h), scale
}
