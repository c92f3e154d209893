package logger

import (
	"context"
	"errors"
	"log/slog"
)

// fanoutHandler duplicates each record across a fixed set of targets. Every
// target applies its own level gate, and records are cloned before delivery
// so one target's mutations cannot bleed into another's.
type fanoutHandler struct {
	targets []slog.Handler
}

func newMultiHandler(targets ...slog.Handler) slog.Handler {
	return &fanoutHandler{targets: targets}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range h.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every willing target. Delivery errors are
// collected instead of short-circuiting, so a failing sink does not starve
// the others.
func (h *fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, t := range h.targets {
		if !t.Enabled(ctx, rec.Level) {
			continue
		}
		if err := t.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.remap(func(t slog.Handler) slog.Handler { return t.WithAttrs(attrs) })
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	return h.remap(func(t slog.Handler) slog.Handler { return t.WithGroup(name) })
}

func (h *fanoutHandler) remap(fn func(slog.Handler) slog.Handler) slog.Handler {
	targets := make([]slog.Handler, len(h.targets))
	for i, t := range h.targets {
		targets[i] = fn(t)
	}
	return &fanoutHandler{targets: targets}
}
