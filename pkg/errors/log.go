package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces and debug lines.
	Verbose bool
	// Out overrides the destination; nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a PlaybackError.
func (h *LogHandler) HandleError(err *PlaybackError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[driftgif error] %s [%s]", err.Op, err.Kind)
		if err.PayloadID != "" {
			fmt.Fprintf(w, " payload=%s", err.PayloadID)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[driftgif error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[driftgif panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[driftgif panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// Debug logs trace output when Verbose is set.
func (h *LogHandler) Debug(op, msg string) {
	if !h.Verbose {
		return
	}
	fmt.Fprintf(h.out(), "[driftgif debug] %s: %s\n", op, msg)
}
