package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/renderd/renderd/internal/render"
	"github.com/renderd/renderd/internal/views"
	"github.com/renderd/renderd/pkg/oauth"
)

// Resolver maps a request to a render descriptor. Resolution may fetch
// data, so it takes a context and must honor its cancellation.
type Resolver interface {
	Resolve(ctx context.Context, req *render.Request) (*render.Descriptor, error)
}

// Action resolves one route. It receives the per-request environment and
// returns what to render, or where to redirect.
type Action func(ctx context.Context, req *render.Request) (*render.Descriptor, error)

// Route binds a path to its action and the script chunks its view needs.
type Route struct {
	Path   string
	Chunks []string
	Action Action
}

// Table is an ordered route table with exact path matching. An
// unmatched path resolves to the not-found descriptor rather than an
// error, so a bad URL is a page, not a failure.
type Table struct {
	routes []Route
}

// NewTable builds a table from the given routes.
func NewTable(routes ...Route) *Table {
	return &Table{routes: routes}
}

// Resolve runs the first matching route's action. The route's chunk list
// is attached to the descriptor so the assembler can load its scripts.
func (t *Table) Resolve(ctx context.Context, req *render.Request) (*render.Descriptor, error) {
	for _, r := range t.routes {
		if r.Path != req.Path {
			continue
		}
		desc, err := r.Action(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", req.Path, err)
		}
		if desc != nil && len(desc.Chunks) == 0 {
			desc.Chunks = r.Chunks
		}
		return desc, nil
	}
	return NotFound(req.Path), nil
}

// Chunks lists every script chunk the table's routes reference, for
// validating the asset manifest at startup.
func (t *Table) Chunks() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range t.routes {
		for _, name := range r.Chunks {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// NotFound is the descriptor for an unmatched path.
func NotFound(path string) *render.Descriptor {
	return &render.Descriptor{
		View:   views.NotFound(path),
		Title:  "Page Not Found",
		Status: http.StatusNotFound,
	}
}

// Placeholder is the descriptor rendered when resolution itself fails:
// an empty mount point the client bundle hydrates into a full page.
func Placeholder() *render.Descriptor {
	return &render.Descriptor{View: views.Placeholder(), Title: "Loading"}
}

// Default returns the application route table.
func Default(providers []string) *Table {
	return NewTable(
		Route{
			Path:   "/",
			Chunks: []string{"home"},
			Action: func(ctx context.Context, req *render.Request) (*render.Descriptor, error) {
				var name string
				if p, ok := req.Identity.(*oauth.Profile); ok {
					name = p.Name
				}
				return &render.Descriptor{
					View:        views.Home(name),
					Title:       "Home",
					Description: "Server-rendered starting point",
				}, nil
			},
		},
		Route{
			Path:   "/login",
			Chunks: []string{"login"},
			Action: func(ctx context.Context, req *render.Request) (*render.Descriptor, error) {
				if req.Identity != nil {
					return &render.Descriptor{Redirect: "/"}, nil
				}
				return &render.Descriptor{
					View:  views.Login(providers),
					Title: "Sign In",
				}, nil
			},
		},
		Route{
			// Kept for old bookmarks.
			Path: "/home",
			Action: func(ctx context.Context, req *render.Request) (*render.Descriptor, error) {
				return &render.Descriptor{Redirect: "/"}, nil
			},
		},
	)
}
