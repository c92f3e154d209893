package middleware

import (
	"fmt"
	"runtime"

	"github.com/renderd/renderd/internal/web"
)

// recoverStackSize caps the stack trace captured on panic.
const recoverStackSize = 4096

// PanicError wraps a recovered panic so the error handler can treat it
// like any other failure.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Recover returns middleware that converts handler panics into errors.
// The panic and its stack are logged; the error handler produces the
// response.
func Recover() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := make([]byte, recoverStackSize)
					stack = stack[:runtime.Stack(stack, false)]

					c.LogError("panic recovered", "panic", r, "stack", string(stack))
					err = &PanicError{Value: r, Stack: stack}
				}
			}()
			return next(c)
		}
	}
}
