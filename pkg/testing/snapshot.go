package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot summarizes a sequence of painted frames so playback can be
// compared against a golden file without storing images.
type Snapshot struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Frames []FrameSnapshot `json:"frames"`
}

// FrameSnapshot describes one painted frame.
type FrameSnapshot struct {
	Index    int    `json:"index"`
	DelayMS  int64  `json:"delayMs,omitempty"`
	Checksum string `json:"checksum"`
	// Samples holds the top-left, center and bottom-right pixels as #RRGGBBAA.
	Samples [3]string `json:"samples"`
	Opaque  int       `json:"opaque"`
}

// Capture appends a summary of img as frame index.
func (s *Snapshot) Capture(index int, delay time.Duration, img *image.RGBA) {
	b := img.Bounds()
	if len(s.Frames) == 0 {
		s.Width, s.Height = b.Dx(), b.Dy()
	}

	h := fnv.New64a()
	opaque := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		h.Write(row)
		for i := 3; i < len(row); i += 4 {
			if row[i] == 0xff {
				opaque++
			}
		}
	}

	s.Frames = append(s.Frames, FrameSnapshot{
		Index:    index,
		DelayMS:  delay.Milliseconds(),
		Checksum: fmt.Sprintf("%016x", h.Sum64()),
		Samples: [3]string{
			pixelHex(img, b.Min.X, b.Min.Y),
			pixelHex(img, b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2),
			pixelHex(img, b.Max.X-1, b.Max.Y-1),
		},
		Opaque: opaque,
	})
}

func pixelHex(img *image.RGBA, x, y int) string {
	if !image.Pt(x, y).In(img.Bounds()) {
		return ""
	}
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When DRIFTGIF_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("DRIFTGIF_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: DRIFTGIF_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: DRIFTGIF_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
