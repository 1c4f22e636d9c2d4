package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/driftgif/pkg/gifdecoder"
)

func init() {
	RegisterCommand(&Command{
		Name:  "info",
		Short: "Show GIF structure and timing",
		Long: `Print the logical screen size, frame count, loop count and per-frame
delays of a GIF. Delays of 10ms or less are reported as they will be played
(100ms).`,
		Usage: "driftgif info <file.gif>",
		Run:   runInfo,
	})
}

func runInfo(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one GIF file is required\n\nUsage: driftgif info <file.gif>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	header, err := gifdecoder.ParseHeader(data)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), err)
	}
	printInfo(filepath.Base(args[0]), len(data), header)
	return nil
}

func printInfo(name string, size int, h *gifdecoder.Header) {
	fmt.Fprintf(stdout, "File:        %s (%d bytes)\n", name, size)
	fmt.Fprintf(stdout, "Size:        %dx%d\n", h.Width, h.Height)
	fmt.Fprintf(stdout, "Frames:      %d\n", h.FrameCount)
	fmt.Fprintf(stdout, "Loop:        %s\n", loopString(h.LoopCount))
	fmt.Fprintf(stdout, "Duration:    %s\n", h.Duration())
	fmt.Fprintf(stdout, "Transparent: %v\n", h.Transparent)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Delays:")
	for i, d := range h.Delays {
		fmt.Fprintf(stdout, "  %4d  %s\n", i, d)
	}
}

func loopString(n int) string {
	switch {
	case n == 0:
		return "forever"
	case n < 0:
		return "once"
	default:
		return fmt.Sprintf("%d repeats", n)
	}
}
