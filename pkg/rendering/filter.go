package rendering

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorFilter transforms pixel colors as a frame is blitted.
//
// Filters receive and return non-premultiplied colors. Filters can be chained
// using [Compose]; the inner filter is applied first.
type ColorFilter interface {
	Filter(c color.NRGBA) color.NRGBA
}

// ColorFilterFunc adapts a plain function to ColorFilter.
type ColorFilterFunc func(c color.NRGBA) color.NRGBA

// Filter calls f(c).
func (f ColorFilterFunc) Filter(c color.NRGBA) color.NRGBA { return f(c) }

// TintFilter blends every pixel toward Color in CIE L*a*b* space, keeping
// the pixel's alpha.
type TintFilter struct {
	Color Color
	// Amount is the blend factor 0.0-1.0; 1.0 replaces the pixel color.
	Amount float64
}

// Filter applies the tint.
func (f TintFilter) Filter(c color.NRGBA) color.NRGBA {
	if c.A == 0 || f.Amount <= 0 {
		return c
	}
	src := colorful.Color{R: float64(c.R) / maxByte, G: float64(c.G) / maxByte, B: float64(c.B) / maxByte}
	tr, tg, tb, _ := f.Color.RGBAF()
	tint := colorful.Color{R: tr, G: tg, B: tb}
	if f.Amount >= 1 {
		r, g, b := tint.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: c.A}
	}
	r, g, b := src.BlendLab(tint, f.Amount).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

// MatrixFilter applies a 5x4 color transformation matrix.
//
// The matrix is stored in row-major order as [R, G, B, A, translate] for
// each output channel:
//
//	R' = Matrix[0]*R + Matrix[1]*G + Matrix[2]*B + Matrix[3]*A + Matrix[4]
//	G' = Matrix[5]*R + Matrix[6]*G + Matrix[7]*B + Matrix[8]*A + Matrix[9]
//	B' = Matrix[10]*R + Matrix[11]*G + Matrix[12]*B + Matrix[13]*A + Matrix[14]
//	A' = Matrix[15]*R + Matrix[16]*G + Matrix[17]*B + Matrix[18]*A + Matrix[19]
//
// Input values are in the range [0, 255].
type MatrixFilter struct {
	Matrix [20]float64
}

// Filter applies the matrix.
func (f MatrixFilter) Filter(c color.NRGBA) color.NRGBA {
	in := [4]float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
	var out [4]uint8
	for row := 0; row < 4; row++ {
		m := f.Matrix[row*5 : row*5+5]
		v := m[0]*in[0] + m[1]*in[1] + m[2]*in[2] + m[3]*in[3] + m[4]
		out[row] = clampByte(v)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

// GrayscaleFilter returns a luminance-preserving desaturation filter.
func GrayscaleFilter() MatrixFilter {
	return MatrixFilter{Matrix: [20]float64{
		0.2126, 0.7152, 0.0722, 0, 0,
		0.2126, 0.7152, 0.0722, 0, 0,
		0.2126, 0.7152, 0.0722, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// Compose returns a filter applying inner first, then outer.
// A nil argument is skipped.
func Compose(outer, inner ColorFilter) ColorFilter {
	switch {
	case outer == nil:
		return inner
	case inner == nil:
		return outer
	}
	return ColorFilterFunc(func(c color.NRGBA) color.NRGBA {
		return outer.Filter(inner.Filter(c))
	})
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= maxByte:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
