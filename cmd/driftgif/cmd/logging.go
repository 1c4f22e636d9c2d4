package cmd

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/driftgif/cmd/driftgif/internal/config"
	"github.com/go-drift/driftgif/pkg/errors"
)

// logOutput is where playback errors are logged.
var logOutput io.Writer = os.Stderr

// loadConfig resolves driftgif.yaml in the working directory and installs
// the playback error handler it asks for.
func loadConfig() (*config.Resolved, error) {
	cfg, err := config.Resolve(workDir)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	errors.SetHandler(newErrorHandler(cfg))
	return cfg, nil
}

// newErrorHandler returns a zerolog-backed handler, or the plain stack-trace
// printing LogHandler in verbose mode.
func newErrorHandler(cfg *config.Resolved) errors.ErrorHandler {
	if cfg.Verbose {
		return &errors.LogHandler{Verbose: true, Out: logOutput}
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: logOutput, TimeFormat: time.TimeOnly}).
		Level(cfg.LogLevel).
		With().Timestamp().Str("component", "driftgif").Logger()
	return errors.NewZerologHandler(logger)
}
