// Package middleware holds the request middlewares applied by the
// application: request ID assignment, panic recovery, request
// timeouts, and session token verification.
package middleware
