package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-drift/driftgif/cmd/driftgif/internal/config"
	"github.com/go-drift/driftgif/pkg/frames"
	"github.com/go-drift/driftgif/pkg/gifdecoder"
	"github.com/go-drift/driftgif/pkg/gifdrawable"
	"github.com/go-drift/driftgif/pkg/host/headless"
	"github.com/go-drift/driftgif/pkg/platform"
	"github.com/go-drift/driftgif/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Play a GIF offscreen and write frames as PNG",
		Long: `Play a GIF on an offscreen surface in real time and write every painted
frame to a PNG file until the requested number of frames has been written.

Flags:
  -n, --frames N    Number of frames to write (default: render.frames or 10)
  -o, --out DIR     Output directory (default: render.out or ./frames)

Player settings (size, transform, alpha, tint, cache) come from driftgif.yaml.`,
		Usage: "driftgif render <file.gif> [-n N] [-o DIR]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	var input string
	frameCount := 0
	outDir := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-n" || arg == "--frames":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a number", arg)
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid frame count %q", args[i+1])
			}
			frameCount = n
			i++
		case arg == "-o" || arg == "--out":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a directory path", arg)
			}
			outDir = args[i+1]
			i++
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		case input == "":
			input = arg
		default:
			return fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if input == "" {
		return fmt.Errorf("a GIF file is required\n\nUsage: driftgif render <file.gif> [-n N] [-o DIR]")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if frameCount > 0 {
		cfg.Frames = frameCount
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	written, err := renderFrames(ctx, data, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d frames to %s\n", len(written), cfg.OutDir)
	return nil
}

// renderFrames plays data on a headless surface driven by its own looper and
// writes each newly painted frame to cfg.OutDir. It returns the written paths.
func renderFrames(ctx context.Context, data []byte, cfg *config.Resolved) ([]string, error) {
	header, err := gifdecoder.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	looper := platform.NewLooper()
	platform.RegisterDispatch(looper.Post)
	defer platform.RegisterDispatch(nil)

	d, err := newPlayer(cfg, header, data)
	if err != nil {
		return nil, err
	}

	var (
		written  []string
		writeErr error
		last     *frames.Frame
		surface  *headless.Surface
	)
	finish := func() {
		looper.Post(func() {
			surface.Close()
			looper.Quit()
		})
	}
	surface = headless.New(d.IntrinsicWidth(), d.IntrinsicHeight(),
		headless.WithScheduler(looper.Post),
		headless.OnPaint(func(img *image.RGBA) {
			cur := d.CurrentFrame()
			if cur == nil || cur == last || len(written) >= cfg.Frames {
				return
			}
			last = cur
			path := filepath.Join(cfg.OutDir, fmt.Sprintf("frame-%03d.png", len(written)))
			if err := writePNG(path, img); err != nil {
				writeErr = err
				finish()
				return
			}
			written = append(written, path)
			if len(written) == cfg.Frames {
				finish()
			}
		}),
	)
	surface.Add(d, rendering.Offset{})
	surface.SetVisible(true)
	d.Start()

	if err := looper.Run(ctx); err != nil {
		surface.Close()
		return written, err
	}
	return written, writeErr
}

// newPlayer builds a drawable configured from the player section of cfg.
// A nil header parses data.
func newPlayer(cfg *config.Resolved, header *gifdecoder.Header, data []byte) (*gifdrawable.Drawable, error) {
	sc := gifdrawable.StateConfig{
		Header:              header,
		Data:                data,
		TargetWidth:         cfg.Width,
		TargetHeight:        cfg.Height,
		FrameTransformation: cfg.Transformation,
	}
	if cfg.CacheSize > 0 {
		sc.Cache = frames.NewLRUCache(cfg.CacheSize)
	}
	d, err := gifdrawable.New(sc)
	if err != nil {
		return nil, err
	}
	d.SetAlpha(cfg.Alpha)
	if cfg.Tint != nil {
		d.SetColorFilter(cfg.Tint)
	}
	return d, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
