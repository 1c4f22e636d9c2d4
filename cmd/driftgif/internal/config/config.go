// Package config loads the optional driftgif.yaml that tunes the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/driftgif/pkg/frames"
	"github.com/go-drift/driftgif/pkg/rendering"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "driftgif.yaml"

// SupportedMajor is the config schema major version this CLI understands.
const SupportedMajor = "v1"

// Config represents the optional driftgif.yaml configuration.
type Config struct {
	Version string       `yaml:"version,omitempty"`
	Player  PlayerConfig `yaml:"player"`
	Render  RenderConfig `yaml:"render"`
	Log     LogConfig    `yaml:"log"`
}

// PlayerConfig contains drawable settings.
type PlayerConfig struct {
	Width     int     `yaml:"width,omitempty"`
	Height    int     `yaml:"height,omitempty"`
	Transform string  `yaml:"transform,omitempty"`
	Quality   string  `yaml:"quality,omitempty"`
	Alpha     *int    `yaml:"alpha,omitempty"`
	Tint      string  `yaml:"tint,omitempty"`
	TintMix   float64 `yaml:"tint_mix,omitempty"`
	Cache     int     `yaml:"cache,omitempty"`
}

// RenderConfig contains headless render settings.
type RenderConfig struct {
	Frames int    `yaml:"frames,omitempty"`
	Out    string `yaml:"out,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root           string
	Version        string
	Width          int
	Height         int
	Transformation frames.Transformation
	Alpha          uint8
	Tint           rendering.ColorFilter
	CacheSize      int
	Frames         int
	OutDir         string
	LogLevel       zerolog.Level
	Verbose        bool
}

// LoadOptional reads driftgif.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads driftgif.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir)
}

// Resolve validates cfg and fills in defaults. Paths are relative to dir.
func (cfg *Config) Resolve(dir string) (*Resolved, error) {
	version, err := validateVersion(cfg.Version)
	if err != nil {
		return nil, err
	}

	if cfg.Player.Width < 0 || cfg.Player.Height < 0 {
		return nil, fmt.Errorf("player size must not be negative (got %dx%d)", cfg.Player.Width, cfg.Player.Height)
	}

	quality, err := parseQuality(cfg.Player.Quality)
	if err != nil {
		return nil, err
	}
	transformation, err := parseTransform(cfg.Player.Transform, quality)
	if err != nil {
		return nil, err
	}

	alpha := uint8(255)
	if cfg.Player.Alpha != nil {
		a := *cfg.Player.Alpha
		if a < 0 || a > 255 {
			return nil, fmt.Errorf("player.alpha must be between 0 and 255 (got %d)", a)
		}
		alpha = uint8(a)
	}

	tint, err := parseTint(cfg.Player.Tint, cfg.Player.TintMix)
	if err != nil {
		return nil, err
	}

	frameCount := cfg.Render.Frames
	if frameCount == 0 {
		frameCount = 10
	}
	if frameCount < 0 {
		return nil, fmt.Errorf("render.frames must be positive (got %d)", frameCount)
	}

	out := strings.TrimSpace(cfg.Render.Out)
	if out == "" {
		out = "frames"
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}

	level := zerolog.InfoLevel
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		level, err = zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("invalid log.level %q: %w", s, err)
		}
	}

	return &Resolved{
		Root:           dir,
		Version:        version,
		Width:          cfg.Player.Width,
		Height:         cfg.Player.Height,
		Transformation: transformation,
		Alpha:          alpha,
		Tint:           tint,
		CacheSize:      cfg.Player.Cache,
		Frames:         frameCount,
		OutDir:         out,
		LogLevel:       level,
		Verbose:        cfg.Log.Verbose,
	}, nil
}

func validateVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return SupportedMajor + ".0.0", nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("version %q is not a valid semantic version", v)
	}
	if semver.Major(v) != SupportedMajor {
		return "", fmt.Errorf("config version %s is not supported (want %s.x)", v, SupportedMajor)
	}
	return semver.Canonical(v), nil
}

func parseQuality(s string) (rendering.FilterQuality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium":
		return rendering.FilterQualityMedium, nil
	case "none", "nearest":
		return rendering.FilterQualityNone, nil
	case "low":
		return rendering.FilterQualityLow, nil
	case "high":
		return rendering.FilterQualityHigh, nil
	default:
		return 0, fmt.Errorf("unknown player.quality %q (use none, low, medium or high)", s)
	}
}

func parseTransform(s string, q rendering.FilterQuality) (frames.Transformation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "identity", "none":
		return frames.Identity{}, nil
	case "scale", "fill":
		return frames.Scale{Quality: q}, nil
	case "fit", "fit_center":
		return frames.FitCenter{Quality: q}, nil
	case "crop", "center_crop":
		return frames.CenterCrop{Quality: q}, nil
	default:
		return nil, fmt.Errorf("unknown player.transform %q (use identity, scale, fit or crop)", s)
	}
}

func parseTint(s string, mix float64) (rendering.ColorFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	c, err := rendering.ParseHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid player.tint: %w", err)
	}
	if mix == 0 {
		mix = 0.5
	}
	if mix < 0 || mix > 1 {
		return nil, fmt.Errorf("player.tint_mix must be between 0 and 1 (got %v)", mix)
	}
	return rendering.TintFilter{Color: c, Amount: mix}, nil
}
