package render

import (
	"context"
	"io"
)

// View is an opaque renderable: anything that can write its markup to w.
// Compatible with templ.Component.
type View interface {
	Render(ctx context.Context, w io.Writer) error
}

// Descriptor is the result of resolving a request path: what to render,
// with what status, or where to redirect instead. A descriptor is
// consumed exactly once and never persisted.
type Descriptor struct {
	// View is the renderable content. Required unless Redirect is set.
	View View

	// Title is the document title.
	Title string

	// Description is the document meta description.
	Description string

	// Status overrides the response status code. Zero means 200, or 302
	// when Redirect is set.
	Status int

	// Redirect short-circuits rendering entirely when non-empty.
	Redirect string

	// Chunks names additional script bundles the document must load,
	// resolved through the asset manifest in order.
	Chunks []string
}
