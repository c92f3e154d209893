package render

import (
	"context"
	"strings"
)

// StyleSet accumulates the CSS fragments touched while rendering one
// request. Duplicate fragments are no-ops; insertion order is preserved
// so output is deterministic. A StyleSet is request-scoped and never
// shared across requests, so it needs no locking.
type StyleSet struct {
	seen    map[string]struct{}
	ordered []string
}

// NewStyleSet creates an empty StyleSet.
func NewStyleSet() *StyleSet {
	return &StyleSet{seen: make(map[string]struct{})}
}

// Add inserts CSS fragments, skipping any already present.
func (s *StyleSet) Add(fragments ...string) {
	for _, css := range fragments {
		if css == "" {
			continue
		}
		if _, ok := s.seen[css]; ok {
			continue
		}
		s.seen[css] = struct{}{}
		s.ordered = append(s.ordered, css)
	}
}

// Len returns the number of distinct fragments collected.
func (s *StyleSet) Len() int {
	return len(s.ordered)
}

// CSS returns all collected fragments joined into one stylesheet.
func (s *StyleSet) CSS() string {
	return strings.Join(s.ordered, "")
}

// styleSetKey carries the request's StyleSet through the render context.
type styleSetKey struct{}

// WithStyleSet attaches a StyleSet to the render context so views can
// emit styles without threading the collector explicitly.
func WithStyleSet(ctx context.Context, s *StyleSet) context.Context {
	return context.WithValue(ctx, styleSetKey{}, s)
}

// InsertCSS records style fragments on the request's StyleSet. Outside a
// render pass (no StyleSet in ctx) it is a no-op, which keeps views
// renderable in isolation.
func InsertCSS(ctx context.Context, fragments ...string) {
	if s, ok := ctx.Value(styleSetKey{}).(*StyleSet); ok {
		s.Add(fragments...)
	}
}
