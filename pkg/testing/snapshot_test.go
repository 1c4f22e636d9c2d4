package testing

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func filled(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSnapshot_Capture(t *testing.T) {
	var snap Snapshot
	img := filled(color.RGBA{R: 255, A: 255})
	img.SetRGBA(3, 1, color.RGBA{})
	snap.Capture(2, 100*time.Millisecond, img)

	if snap.Width != 4 || snap.Height != 2 {
		t.Errorf("size = %dx%d, want 4x2", snap.Width, snap.Height)
	}
	f := snap.Frames[0]
	if f.Index != 2 || f.DelayMS != 100 {
		t.Errorf("frame = %+v, want index 2 delay 100", f)
	}
	if f.Samples[0] != "#ff0000ff" || f.Samples[2] != "#00000000" {
		t.Errorf("samples = %v", f.Samples)
	}
	if f.Opaque != 7 {
		t.Errorf("opaque = %d, want 7", f.Opaque)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	var a, b Snapshot
	a.Capture(0, 0, filled(color.RGBA{G: 255, A: 255}))
	b.Capture(0, 0, filled(color.RGBA{G: 255, A: 255}))

	if diff := a.Diff(&b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	var a, b Snapshot
	a.Capture(0, 0, filled(color.RGBA{G: 255, A: 255}))
	b.Capture(0, 0, filled(color.RGBA{B: 255, A: 255}))

	if diff := a.Diff(&b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	var snap Snapshot
	snap.Capture(0, 50*time.Millisecond, filled(color.RGBA{R: 10, G: 20, B: 30, A: 255}))

	dir := t.TempDir()
	path := filepath.Join(dir, "testdata", "frames.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// MatchesFile should pass now
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("DRIFTGIF_UPDATE_SNAPSHOTS", "")
	var snap Snapshot
	snap.Capture(0, 0, filled(color.RGBA{A: 255}))

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.json")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("DRIFTGIF_UPDATE_SNAPSHOTS", "")
	var first, second Snapshot
	first.Capture(0, 0, filled(color.RGBA{R: 255, A: 255}))
	second.Capture(1, 0, filled(color.RGBA{B: 255, A: 255}))

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	var snap Snapshot
	snap.Capture(0, 0, filled(color.RGBA{A: 255}))
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv("DRIFTGIF_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
