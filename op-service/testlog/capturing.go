package testlog

import (
	"context"
	"log/slog"
	"sync"
)

// CapturedRecord is a log record together with the attributes inherited from the logger it was written to.
type CapturedRecord struct {
	slog.Record
	inherited []slog.Attr
}

// AttrValue returns the value of the first attribute named key, searching the record before the inherited attributes.
func (r *CapturedRecord) AttrValue(key string) (v slog.Value, ok bool) {
	r.Record.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			v, ok = a.Value, true
			return false
		}
		return true
	})
	if ok {
		return v, true
	}
	for _, a := range r.inherited {
		if a.Key == key {
			return a.Value, true
		}
	}
	return slog.Value{}, false
}

type captured struct {
	mu   sync.Mutex
	logs []*CapturedRecord
}

// CapturingHandler keeps every record it handles and forwards it to the wrapped handler.
// Handlers derived with WithAttrs share the captured records.
type CapturingHandler struct {
	handler slog.Handler
	state   *captured
	attrs   []slog.Attr
}

func (c *CapturingHandler) Unwrap() slog.Handler {
	return c.handler
}

func (c *CapturingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return c.handler.Enabled(ctx, level)
}

func (c *CapturingHandler) Handle(ctx context.Context, r slog.Record) error {
	c.state.mu.Lock()
	c.state.logs = append(c.state.logs, &CapturedRecord{Record: r.Clone(), inherited: c.attrs})
	c.state.mu.Unlock()
	return c.handler.Handle(ctx, r)
}

func (c *CapturingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	inherited := append(append([]slog.Attr{}, c.attrs...), attrs...)
	return &CapturingHandler{handler: c.handler.WithAttrs(attrs), state: c.state, attrs: inherited}
}

func (c *CapturingHandler) WithGroup(name string) slog.Handler {
	return &CapturingHandler{handler: c.handler.WithGroup(name), state: c.state, attrs: c.attrs}
}

// Clear drops all captured records.
func (c *CapturingHandler) Clear() {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	c.state.logs = nil
}

// FindLog returns the first captured record at level with exactly msg, or nil.
func (c *CapturingHandler) FindLog(level slog.Level, msg string) *CapturedRecord {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	for _, r := range c.state.logs {
		if r.Level == level && r.Message == msg {
			return r
		}
	}
	return nil
}

// FindLogs returns every captured record at level with exactly msg.
func (c *CapturingHandler) FindLogs(level slog.Level, msg string) []*CapturedRecord {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	var out []*CapturedRecord
	for _, r := range c.state.logs {
		if r.Level == level && r.Message == msg {
			out = append(out, r)
		}
	}
	return out
}
