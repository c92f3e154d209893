package web

// Handler declares routes on a router.
//
// Example:
//
//	type PagesHandler struct {
//	    resolver routes.Resolver
//	}
//
//	func (h *PagesHandler) Routes(r web.Router) {
//	    r.GET("/*", h.renderPage)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerRoutes adapts a plain function to the Handler interface.
type HandlerRoutes func(r Router)

func (f HandlerRoutes) Routes(r Router) { f(r) }

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error triggers the application error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing, or wrap
// the response.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
