package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestPlaybackErrorString(t *testing.T) {
	err := &PlaybackError{
		Op:   "frames.Manager.produce",
		Kind: KindProduction,
		Err:  ErrNoFrames,
	}
	got := err.Error()
	want := "frames.Manager.produce [production]: payload has no frames"
	if got != want {
		t.Errorf("PlaybackError.Error() = %q, want %q", got, want)
	}
}

func TestPlaybackErrorWithPayload(t *testing.T) {
	err := &PlaybackError{
		Op:        "gifdrawable.OnFrameReady",
		Kind:      KindDetached,
		PayloadID: "cat.gif",
		Err:       fmt.Errorf("no host"),
	}
	want := "payload=cat.gif"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestPlaybackErrorUnwrap(t *testing.T) {
	err := &PlaybackError{Op: "op", Err: fmt.Errorf("wrapped: %w", ErrCleared)}
	if !Is(err, ErrCleared) {
		t.Error("expected Is(err, ErrCleared) to be true")
	}
	var pe *PlaybackError
	if !As(fmt.Errorf("outer: %w", err), &pe) {
		t.Fatal("expected As to find PlaybackError")
	}
	if pe.Op != "op" {
		t.Errorf("Op = %q, want %q", pe.Op, "op")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindProduction, "production"},
		{KindDetached, "detached"},
		{KindRecycled, "recycled"},
		{KindDecode, "decode"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "frames.Manager.produce"
	if got, want := err.Error(), "panic in frames.Manager.produce: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *PlaybackError
	handler := &testHandler{onError: func(err *PlaybackError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&PlaybackError{Op: "test.op", Kind: KindDecode, Err: ErrNoFrames})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	oldHandler := DefaultHandler
	SetHandler(&testHandler{onError: func(*PlaybackError) { called = true }})
	defer SetHandler(oldHandler)

	Report(nil)
	ReportPanic(nil)
	if called {
		t.Error("nil errors must not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	oldHandler := DefaultHandler
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleError(&PlaybackError{Op: "op", Kind: KindDecode, PayloadID: "p", Err: ErrNoFrames})
	if got := buf.String(); got != "[driftgif error] op: payload has no frames\n" {
		t.Errorf("terse output = %q", got)
	}

	buf.Reset()
	h.Debug("op", "ignored")
	if buf.Len() != 0 {
		t.Errorf("debug output without Verbose = %q, want empty", buf.String())
	}

	h.Verbose = true
	h.HandleError(&PlaybackError{Op: "op", Kind: KindDecode, PayloadID: "p", Err: ErrNoFrames})
	if got := buf.String(); !strings.Contains(got, "payload=p") || !strings.Contains(got, "[decode]") {
		t.Errorf("verbose output = %q", got)
	}

	buf.Reset()
	h.Debug("op", "hello")
	if got := buf.String(); got != "[driftgif debug] op: hello\n" {
		t.Errorf("debug output = %q", got)
	}
}

func TestDebugfRoutesToDebugHandler(t *testing.T) {
	var buf bytes.Buffer
	oldHandler := DefaultHandler
	SetHandler(NewZerologHandler(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	defer SetHandler(oldHandler)

	Debugf("frames.Manager", "frame %d ready", 3)
	if got := buf.String(); !strings.Contains(got, `"message":"frame 3 ready"`) {
		t.Errorf("zerolog output = %q", got)
	}
}

func TestZerologHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	h := NewZerologHandler(zerolog.New(&buf).Level(zerolog.WarnLevel))

	h.HandleError(&PlaybackError{Op: "op", Kind: KindProduction, Err: ErrNoFrames})
	if buf.Len() != 0 {
		t.Errorf("production failure should log at debug, got %q", buf.String())
	}

	h.HandleError(&PlaybackError{Op: "op", Kind: KindDecode, PayloadID: "p", Err: ErrNoFrames})
	got := buf.String()
	for _, want := range []string{`"level":"warn"`, `"kind":"decode"`, `"payload":"p"`} {
		if !strings.Contains(got, want) {
			t.Errorf("zerolog output %q should contain %s", got, want)
		}
	}

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "op", Value: "boom"})
	if got := buf.String(); !strings.Contains(got, `"level":"error"`) {
		t.Errorf("panic output = %q", got)
	}
}

type testHandler struct {
	onError func(*PlaybackError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *PlaybackError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
