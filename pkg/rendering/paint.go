package rendering

// Paint carries the per-draw parameters a host sets on a drawable.
//
// Paint parameters only affect how a frame is blitted, never how it is
// decoded.
type Paint struct {
	// Alpha is the overall opacity 0.0-1.0; negative defaults to 1.0.
	Alpha float64

	// ColorFilter transforms every pixel before compositing. Nil draws the
	// image unchanged.
	ColorFilter ColorFilter
}

// DefaultPaint returns a fully opaque paint without a color filter.
func DefaultPaint() Paint {
	return Paint{Alpha: 1.0}
}

// EffectiveAlpha returns Alpha clamped to [0, 1], mapping negative values to 1.
func (p Paint) EffectiveAlpha() float64 {
	switch {
	case p.Alpha < 0:
		return 1.0
	case p.Alpha > 1:
		return 1.0
	default:
		return p.Alpha
	}
}

// AlphaFromByte converts a 0-255 alpha into the 0.0-1.0 range used by Paint.
func AlphaFromByte(a uint8) float64 {
	return float64(a) / maxByte
}
