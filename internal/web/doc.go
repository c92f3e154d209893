// Package web is the HTTP core of the rendering service: a thin layer
// over chi that gives handlers a request-scoped Context, error-returning
// handler signatures, and a single place where handler errors flow into
// the application error handler (which owns the fallback error page).
//
// The App is assembled once at startup from options and is immutable
// afterwards. Run binds the listener (TLS when configured) and blocks
// until signal-driven graceful shutdown.
package web
