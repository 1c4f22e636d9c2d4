package errors

import (
	"github.com/rs/zerolog"
)

// ZerologHandler routes playback errors to a zerolog.Logger.
type ZerologHandler struct {
	Logger zerolog.Logger
}

// NewZerologHandler returns a handler writing through logger.
func NewZerologHandler(logger zerolog.Logger) *ZerologHandler {
	return &ZerologHandler{Logger: logger}
}

// HandleError logs err at warn level. Production failures are expected
// during normal playback and are logged at debug level.
func (h *ZerologHandler) HandleError(err *PlaybackError) {
	if err == nil {
		return
	}
	ev := h.Logger.Warn()
	if err.Kind == KindProduction || err.Kind == KindDetached {
		ev = h.Logger.Debug()
	}
	ev = ev.Str("op", err.Op).Stringer("kind", err.Kind).Err(err.Err)
	if err.PayloadID != "" {
		ev = ev.Str("payload", err.PayloadID)
	}
	if !err.Timestamp.IsZero() {
		ev = ev.Time("at", err.Timestamp)
	}
	ev.Msg("playback error")
}

// HandlePanic logs err at error level with its stack trace.
func (h *ZerologHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.Logger.Error().
		Str("op", err.Op).
		Interface("value", err.Value).
		Str("stack", err.StackTrace).
		Msg("recovered panic")
}

// Debug logs trace output at debug level.
func (h *ZerologHandler) Debug(op, msg string) {
	h.Logger.Debug().Str("op", op).Msg(msg)
}
