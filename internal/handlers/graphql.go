package handlers

import (
	"context"
	"net/http"

	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"

	"github.com/renderd/renderd/internal/graph"
	"github.com/renderd/renderd/internal/middleware"
	"github.com/renderd/renderd/internal/web"
)

// GraphQLHandler mounts the query gateway. In dev mode it also serves
// the GraphiQL explorer and pretty-prints responses.
type GraphQLHandler struct {
	gateway http.Handler
}

// NewGraphQLHandler creates the gateway handler around a schema.
func NewGraphQLHandler(schema graphql.Schema, dev bool) *GraphQLHandler {
	gateway := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   dev,
		GraphiQL: dev,
		RootObjectFn: func(ctx context.Context, r *http.Request) map[string]any {
			return map[string]any{
				graph.RootIdentity: middleware.IdentityFromContext(ctx),
			}
		},
	})
	return &GraphQLHandler{gateway: gateway}
}

// Routes mounts the gateway. Mount covers GET and POST, which is what
// the explorer and clients use respectively.
func (h *GraphQLHandler) Routes(r web.Router) {
	r.Mount("/graphql", h.gateway)
}
