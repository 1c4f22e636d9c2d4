package rendering

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestImageCanvasSize(t *testing.T) {
	c := NewImageCanvas(4, 3)
	if got := c.Size(); got != (Size{Width: 4, Height: 3}) {
		t.Errorf("Size() = %+v, want 4x3", got)
	}
}

func TestImageCanvasClear(t *testing.T) {
	c := NewImageCanvas(2, 2)
	c.Clear(ColorRed)
	if got := c.Image().RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel after Clear = %+v, want opaque red", got)
	}
}

func TestImageCanvasDrawImageAtPosition(t *testing.T) {
	c := NewImageCanvas(4, 4)
	c.DrawImage(solid(2, 2, color.NRGBA{G: 255, A: 255}), Offset{X: 1, Y: 1}, DefaultPaint())

	if got := c.Image().RGBAAt(0, 0); got.A != 0 {
		t.Errorf("pixel outside blit = %+v, want transparent", got)
	}
	if got := c.Image().RGBAAt(2, 2); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel inside blit = %+v, want opaque green", got)
	}
}

func TestImageCanvasDrawImageAlpha(t *testing.T) {
	c := NewImageCanvas(1, 1)
	c.DrawImage(solid(1, 1, color.NRGBA{R: 255, A: 255}), Offset{}, Paint{Alpha: 0.5})
	got := c.Image().RGBAAt(0, 0)
	if got.A < 120 || got.A > 135 {
		t.Errorf("alpha after half-opacity blit = %d, want ~128", got.A)
	}
}

func TestImageCanvasZeroAlphaDrawsNothing(t *testing.T) {
	c := NewImageCanvas(1, 1)
	c.DrawImage(solid(1, 1, color.NRGBA{R: 255, A: 255}), Offset{}, Paint{Alpha: 0})
	if got := c.Image().RGBAAt(0, 0); got.A != 0 {
		t.Errorf("pixel = %+v, want untouched", got)
	}
}

func TestImageCanvasColorFilter(t *testing.T) {
	c := NewImageCanvas(1, 1)
	paint := Paint{Alpha: 1, ColorFilter: GrayscaleFilter()}
	c.DrawImage(solid(1, 1, color.NRGBA{R: 255, A: 255}), Offset{}, paint)
	got := c.Image().RGBAAt(0, 0)
	if got.R != got.G || got.G != got.B {
		t.Errorf("grayscale pixel = %+v, want equal channels", got)
	}
}

func TestPaintEffectiveAlpha(t *testing.T) {
	tests := []struct {
		alpha float64
		want  float64
	}{
		{-1, 1},
		{0, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tt := range tests {
		if got := (Paint{Alpha: tt.alpha}).EffectiveAlpha(); got != tt.want {
			t.Errorf("EffectiveAlpha(%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

func TestTintFilter(t *testing.T) {
	in := color.NRGBA{R: 10, G: 20, B: 30, A: 77}

	if got := (TintFilter{Color: ColorRed, Amount: 0}).Filter(in); got != in {
		t.Errorf("zero amount changed pixel: %+v", got)
	}

	got := TintFilter{Color: ColorRed, Amount: 1}.Filter(in)
	if got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("full tint = %+v, want pure red", got)
	}
	if got.A != 77 {
		t.Errorf("tint alpha = %d, want preserved 77", got.A)
	}
}

func TestComposeOrder(t *testing.T) {
	var order []string
	inner := ColorFilterFunc(func(c color.NRGBA) color.NRGBA { order = append(order, "inner"); return c })
	outer := ColorFilterFunc(func(c color.NRGBA) color.NRGBA { order = append(order, "outer"); return c })

	Compose(outer, inner).Filter(color.NRGBA{})
	if len(order) != 2 || order[0] != "inner" || order[1] != "outer" {
		t.Errorf("order = %v, want [inner outer]", order)
	}
	if Compose(nil, inner) == nil || Compose(outer, nil) == nil {
		t.Error("Compose with one nil should return the other filter")
	}
}

func TestPixelFormatString(t *testing.T) {
	if got := PixelFormatTranslucent.String(); got != "translucent" {
		t.Errorf("String() = %q", got)
	}
	if got := PixelFormat(99).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
}
