package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/renderd/renderd/internal/web"
)

// DefaultTimeout bounds a request when no explicit timeout is given.
const DefaultTimeout = 30 * time.Second

// TimeoutError reports a request that exceeded its deadline.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.Timeout)
}

// Timeout returns middleware that bounds the whole request. The handler
// keeps running after the deadline fires; anything downstream that
// honors context cancellation stops early.
func Timeout(timeout time.Duration) web.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					c.LogWarn("request timeout", "timeout", timeout.String())
					return &TimeoutError{Timeout: timeout}
				}
				return ctx.Err()
			}
		}
	}
}
