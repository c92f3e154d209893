package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/renderd/renderd/pkg/oauth"
)

// Root object keys set by the HTTP layer for every GraphQL request.
const (
	RootIdentity = "identity"
)

// userType mirrors the session claim payload.
var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":   &graphql.Field{Type: graphql.String},
		"name":    &graphql.Field{Type: graphql.String},
		"picture": &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the gateway schema. The authenticated identity
// arrives through the per-request root object, never through globals.
func NewSchema() (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:        userType,
				Description: "The authenticated caller, or null.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					root, _ := p.Info.RootValue.(map[string]any)
					if profile, ok := root[RootIdentity].(*oauth.Profile); ok {
						return profile, nil
					}
					return nil, nil
				},
			},
			"serverTime": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.String),
				Description: "Current server time, RFC 3339.",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return time.Now().UTC().Format(time.RFC3339), nil
				},
			},
			"health": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return true, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}
