// Package logger provides structured logging on top of log/slog with
// per-call context extraction and optional Sentry fan-out.
//
// Context extractors inject request-scoped attributes (request ID, stage)
// into every record without handler-site boilerplate. NewWithSentry mirrors
// records to Sentry when a DSN is configured and degrades to stdout-only
// logging when it is not, so development and production share one code path.
// ParseLevel resolves client-supplied level names for the diagnostics
// endpoint; unrecognized names are reported so the caller can fall back.
package logger
