package handlers

import (
	"net/http"

	"github.com/renderd/renderd/internal/render"
	"github.com/renderd/renderd/internal/web"
)

// HandleError is the application error handler: any failure that
// escapes a handler becomes a complete, self-contained error document.
func HandleError(c web.Context, err error) error {
	status := web.StatusFromError(err)

	// The fallback page shows the error's message text, never a stack.
	message := err.Error()
	if he := web.AsHTTPError(err); he != nil {
		message = he.Message
	}

	if status >= http.StatusInternalServerError {
		c.LogError("request failed",
			"status", status, "path", c.Path(), "user_agent", c.UserAgent(), "error", err)
	} else {
		c.LogWarn("request rejected",
			"status", status, "path", c.Path(), "user_agent", c.UserAgent(), "error", err)
	}

	if c.Written() {
		return nil
	}
	return c.HTML(status, render.ErrorPage(status, message))
}

// HandleNotFound covers requests no route matched, which with the
// catch-all page route means non-GET methods on page paths.
func HandleNotFound(c web.Context) error {
	return c.HTML(http.StatusNotFound, render.ErrorPage(http.StatusNotFound, "There is nothing here."))
}
