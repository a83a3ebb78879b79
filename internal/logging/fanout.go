package logging

import (
	"context"
	"log/slog"
)

// Fanout duplicates every record to a set of slog.Handlers. The server runs
// one for stdout JSON and one for the system_logs sink; each child keeps its
// own level filter.
type Fanout struct {
	children []slog.Handler
}

func NewFanout(children ...slog.Handler) *Fanout {
	return &Fanout{children: children}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.children {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every child that accepts its level. Delivery
// stops at the first failing child so the error is not silently swallowed.
func (f *Fanout) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range f.children {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	children := make([]slog.Handler, len(f.children))
	for i, h := range f.children {
		children[i] = h.WithAttrs(attrs)
	}
	return &Fanout{children: children}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	children := make([]slog.Handler, len(f.children))
	for i, h := range f.children {
		children[i] = h.WithGroup(name)
	}
	return &Fanout{children: children}
}
