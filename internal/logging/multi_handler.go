package logging

import (
	"context"
	"log/slog"
)

// MultiHandler tees every record to each target handler. One failing target
// does not stop delivery to the others; the first error is reported.
type MultiHandler struct {
	targets []slog.Handler
}

func NewMultiHandler(targets ...slog.Handler) *MultiHandler {
	return &MultiHandler{targets: targets}
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range m.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, t := range m.targets {
		if !t.Enabled(ctx, record.Level) {
			continue
		}
		if err := t.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MultiHandler{targets: m.derive(func(t slog.Handler) slog.Handler {
		return t.WithAttrs(attrs)
	})}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return &MultiHandler{targets: m.derive(func(t slog.Handler) slog.Handler {
		return t.WithGroup(name)
	})}
}

func (m *MultiHandler) derive(fn func(slog.Handler) slog.Handler) []slog.Handler {
	targets := make([]slog.Handler, len(m.targets))
	for i, t := range m.targets {
		targets[i] = fn(t)
	}
	return targets
}
