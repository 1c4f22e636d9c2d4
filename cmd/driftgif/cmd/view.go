package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/driftgif/pkg/host/ebitenhost"
	"github.com/go-drift/driftgif/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "view",
		Short: "Play a GIF in a window",
		Long: `Open a desktop window and play a GIF until the window is closed.

Flags:
  --background HEX   Window clear color, e.g. #202020 (default: transparent)
  --pause            Pause playback while the window is unfocused

Player settings (size, transform, alpha, tint, cache) come from driftgif.yaml.`,
		Usage: "driftgif view <file.gif> [--background HEX] [--pause]",
		Run:   runView,
	})
}

func runView(args []string) error {
	var input string
	wcfg := ebitenhost.Config{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--background":
			if i+1 >= len(args) {
				return fmt.Errorf("--background requires a color")
			}
			c, err := rendering.ParseHex(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid background %q: %w", args[i+1], err)
			}
			wcfg.Background = c
			i++
		case arg == "--pause":
			wcfg.PauseWhenUnfocused = true
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		case input == "":
			input = arg
		default:
			return fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if input == "" {
		return fmt.Errorf("a GIF file is required\n\nUsage: driftgif view <file.gif>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	d, err := newPlayer(cfg, nil, data)
	if err != nil {
		return err
	}

	wcfg.Title = "driftgif - " + filepath.Base(input)
	wcfg.Width, wcfg.Height = d.IntrinsicWidth(), d.IntrinsicHeight()
	w := ebitenhost.New(wcfg)
	w.Add(d, rendering.Offset{})
	d.Start()
	return w.Run()
}
