package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/driftgif/pkg/errors"
)

// writeGIF writes a 4x2 animation cycling red, green, blue with 2cs delays.
func writeGIF(t *testing.T, dir string) string {
	t.Helper()
	palette := color.Palette{
		color.RGBA{R: 255, A: 255},
		color.RGBA{G: 255, A: 255},
		color.RGBA{B: 255, A: 255},
	}
	anim := &gif.GIF{}
	for i := range palette {
		img := image.NewPaletted(image.Rect(0, 0, 4, 2), palette)
		for j := range img.Pix {
			img.Pix[j] = uint8(i)
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, 2)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "rgb.gif")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// capture redirects command output and restores global CLI state.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out, logs bytes.Buffer
	prevOut, prevLog := stdout, logOutput
	prevDir, prevVerbose := workDir, verbose
	stdout, logOutput = &out, &logs
	t.Cleanup(func() {
		stdout, logOutput = prevOut, prevLog
		workDir, verbose = prevDir, prevVerbose
		errors.SetHandler(nil)
	})
	return &out
}
