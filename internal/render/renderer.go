package render

import (
	"bytes"
	"context"
	"fmt"
)

// Renderer turns a resolved descriptor into markup, collecting every
// style fragment the view emits into the request's StyleSet. Rendering
// is synchronous; all data fetching happens earlier, during resolution.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the view's markup. Styles land on req.Styles through
// the context side channel; duplicate fragments are collapsed by the set.
func (r *Renderer) Render(ctx context.Context, desc *Descriptor, req *Request) ([]byte, error) {
	if desc == nil || desc.View == nil {
		return nil, fmt.Errorf("render: descriptor has no view")
	}

	ctx = WithStyleSet(ctx, req.Styles)
	ctx = WithRequest(ctx, req)

	var buf bytes.Buffer
	if err := desc.View.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", req.Path, err)
	}
	return buf.Bytes(), nil
}

// requestKey carries the render Request through the view context.
type requestKey struct{}

// WithRequest attaches the render Request to the view context.
func WithRequest(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the render Request attached to the view context,
// or nil outside a render pass.
func RequestFrom(ctx context.Context) *Request {
	req, _ := ctx.Value(requestKey{}).(*Request)
	return req
}
