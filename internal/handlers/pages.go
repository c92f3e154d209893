package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/renderd/renderd/internal/middleware"
	"github.com/renderd/renderd/internal/render"
	"github.com/renderd/renderd/internal/routes"
	"github.com/renderd/renderd/internal/web"
)

// DefaultResolveTimeout bounds route resolution, which may fetch data
// from upstream services.
const DefaultResolveTimeout = 10 * time.Second

// PagesHandler serves every document request: resolve the path, render
// the view, assemble the full page.
type PagesHandler struct {
	resolver       routes.Resolver
	renderer       *render.Renderer
	assembler      *render.Assembler
	resolveTimeout time.Duration
}

// NewPagesHandler creates the page handler.
func NewPagesHandler(resolver routes.Resolver, renderer *render.Renderer, assembler *render.Assembler) *PagesHandler {
	return &PagesHandler{
		resolver:       resolver,
		renderer:       renderer,
		assembler:      assembler,
		resolveTimeout: DefaultResolveTimeout,
	}
}

// Routes declares the catch-all page route. Specific routes registered
// by other handlers take precedence.
func (h *PagesHandler) Routes(r web.Router) {
	r.GET("/*", h.page)
}

// page runs the full pipeline for one document request.
func (h *PagesHandler) page(c web.Context) error {
	identity := middleware.Identity(c)
	req := render.NewRequest(c.Request(), NewForwardingClient(c.Request()), identity)

	ctx, cancel := context.WithTimeout(c.Context(), h.resolveTimeout)
	defer cancel()

	desc, err := h.resolver.Resolve(ctx, req)
	if err != nil {
		// A failed resolve still serves a page: an empty shell the
		// client bundle loads into, rather than a hard error.
		c.LogError("route resolution failed",
			"path", req.Path, "user_agent", req.UserAgent, "error", err)
		desc = routes.Placeholder()
	}

	if desc.Redirect != "" {
		status := desc.Status
		if status == 0 {
			status = http.StatusFound
		}
		return c.Redirect(status, desc.Redirect)
	}

	markup, err := h.renderer.Render(c.Context(), desc, req)
	if err != nil {
		return err
	}

	doc, err := h.assembler.Assemble(markup, desc, req)
	if err != nil {
		return err
	}

	status := desc.Status
	if status == 0 {
		status = http.StatusOK
	}
	return c.HTML(status, doc)
}
