// Package graph defines the GraphQL gateway schema served at /graphql.
package graph
