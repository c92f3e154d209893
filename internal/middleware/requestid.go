package middleware

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/logger"
)

// requestIDKey is the request value key for the request ID.
type requestIDKey struct{}

// requestIDHeaders are checked in order for an ID assigned upstream.
var requestIDHeaders = []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"}

// RequestID returns middleware that assigns each request a unique ID,
// reusing one supplied by an upstream proxy when present. The ID is
// stored on the request and echoed in the response header.
func RequestID() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			var id string
			for _, h := range requestIDHeaders {
				if v := c.Header(h); v != "" {
					id = v
					break
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader("X-Request-ID", id)
			return next(c)
		}
	}
}

// GetRequestID returns the request's ID, or "" when the middleware is
// not applied.
func GetRequestID(c web.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor feeds the request ID into every log record made
// with the request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
