package rendering

import (
	"image"
)

// FilterQuality controls image sampling quality during scaling.
type FilterQuality int

const (
	FilterQualityNone   FilterQuality = iota // Nearest neighbor (pixelated)
	FilterQualityLow                         // Approximate bilinear
	FilterQualityMedium                      // Bilinear
	FilterQualityHigh                        // Catmull-Rom
)

// PixelFormat describes how a drawable composites with what is behind it.
type PixelFormat int

const (
	// PixelFormatUnknown is reported when nothing is known about the content.
	PixelFormatUnknown PixelFormat = iota
	// PixelFormatTransparent means the drawable renders nothing.
	PixelFormatTransparent
	// PixelFormatTranslucent means some pixels are partially or fully transparent.
	PixelFormatTranslucent
	// PixelFormatOpaque means every pixel is fully opaque.
	PixelFormatOpaque
)

// String returns a human-readable representation of the pixel format.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatTransparent:
		return "transparent"
	case PixelFormatTranslucent:
		return "translucent"
	case PixelFormatOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Canvas is the render target a host surface hands to a drawable on paint.
//
// Implementations exist per host platform; drawables only depend on this
// interface.
type Canvas interface {
	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawImage draws an image with its top-left corner at the given position.
	// The paint's alpha and color filter are applied to the image pixels.
	DrawImage(img image.Image, position Offset, paint Paint)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
