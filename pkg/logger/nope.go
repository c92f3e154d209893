package logger

import "log/slog"

// NewNope returns a logger whose records go nowhere. Components default to
// it when no logger was configured, which keeps call sites free of nil
// checks.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
