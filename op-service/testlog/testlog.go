// Package testlog provides log handlers for unit tests.
package testlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/log"
)

// Testing is the subset of testing.TB the loggers need.
type Testing interface {
	Logf(format string, args ...any)
	Helper()
	Cleanup(func())
}

// Logger returns a logger which writes every record to the unit test log of t.
func Logger(t Testing, level slog.Level) log.Logger {
	return log.NewLogger(newTestHandler(t, level))
}

// CaptureLogger returns a logger that writes to the unit test log and also keeps every record,
// so a test can assert on what was logged.
func CaptureLogger(t Testing, level slog.Level) (log.Logger, *CapturingHandler) {
	ch := &CapturingHandler{
		handler: newTestHandler(t, level),
		state:   new(captured),
	}
	return log.NewLogger(ch), ch
}

type testHandler struct {
	t     Testing
	mu    *sync.Mutex
	buf   *bytes.Buffer
	inner slog.Handler
}

func newTestHandler(t Testing, level slog.Level) *testHandler {
	buf := new(bytes.Buffer)
	return &testHandler{
		t:     t,
		mu:    new(sync.Mutex),
		buf:   buf,
		inner: log.NewTerminalHandlerWithLevel(buf, level, false),
	}
}

func (h *testHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *testHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	h.t.Helper()
	h.t.Logf("%s", strings.TrimRight(h.buf.String(), "\n"))
	h.buf.Reset()
	return nil
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testHandler{t: h.t, mu: h.mu, buf: h.buf, inner: h.inner.WithAttrs(attrs)}
}

func (h *testHandler) WithGroup(name string) slog.Handler {
	return &testHandler{t: h.t, mu: h.mu, buf: h.buf, inner: h.inner.WithGroup(name)}
}
