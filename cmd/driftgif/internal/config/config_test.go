package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/go-drift/driftgif/pkg/frames"
	"github.com/go-drift/driftgif/pkg/rendering"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Version != "v1.0.0" {
		t.Errorf("Version = %q, want v1.0.0", cfg.Version)
	}
	if _, ok := cfg.Transformation.(frames.Identity); !ok {
		t.Errorf("Transformation = %T, want Identity", cfg.Transformation)
	}
	if cfg.Alpha != 255 || cfg.Tint != nil {
		t.Errorf("Alpha = %d, Tint = %v; want 255, nil", cfg.Alpha, cfg.Tint)
	}
	if cfg.Frames != 10 {
		t.Errorf("Frames = %d, want 10", cfg.Frames)
	}
	if cfg.OutDir != filepath.Join(dir, "frames") {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestResolveFile(t *testing.T) {
	dir := writeConfig(t, `
version: 1.2.0
player:
  width: 64
  height: 48
  transform: crop
  quality: high
  alpha: 128
  tint: "#ff0000"
  tint_mix: 0.25
  cache: 32
render:
  frames: 5
  out: /tmp/driftgif-out
log:
  level: DEBUG
  verbose: true
`)
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Version != "v1.2.0" {
		t.Errorf("Version = %q", cfg.Version)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	crop, ok := cfg.Transformation.(frames.CenterCrop)
	if !ok || crop.Quality != rendering.FilterQualityHigh {
		t.Errorf("Transformation = %#v, want high quality CenterCrop", cfg.Transformation)
	}
	if cfg.Alpha != 128 {
		t.Errorf("Alpha = %d", cfg.Alpha)
	}
	tint, ok := cfg.Tint.(rendering.TintFilter)
	if !ok || tint.Color != rendering.ColorRed || tint.Amount != 0.25 {
		t.Errorf("Tint = %#v", cfg.Tint)
	}
	if cfg.CacheSize != 32 || cfg.Frames != 5 || cfg.OutDir != "/tmp/driftgif-out" {
		t.Errorf("cache = %d, frames = %d, out = %q", cfg.CacheSize, cfg.Frames, cfg.OutDir)
	}
	if cfg.LogLevel != zerolog.DebugLevel || !cfg.Verbose {
		t.Errorf("log = %v verbose=%v", cfg.LogLevel, cfg.Verbose)
	}
}

func TestResolveRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"major version", "version: 2.0.0\n", "not supported"},
		{"bad version", "version: banana\n", "not a valid semantic version"},
		{"transform", "player:\n  transform: spin\n", "player.transform"},
		{"quality", "player:\n  quality: ultra\n", "player.quality"},
		{"alpha", "player:\n  alpha: 300\n", "player.alpha"},
		{"tint", "player:\n  tint: red\n", "player.tint"},
		{"tint mix", "player:\n  tint: \"#fff\"\n  tint_mix: 2\n", "tint_mix"},
		{"size", "player:\n  width: -1\n", "negative"},
		{"frames", "render:\n  frames: -3\n", "render.frames"},
		{"level", "log:\n  level: loud\n", "log.level"},
		{"yaml", "player: [\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Resolve() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Version != "" || cfg.Player.Width != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}
