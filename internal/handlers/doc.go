// Package handlers wires the HTTP surface: the catch-all page pipeline,
// the login handshake, the query gateway mount, and the client
// diagnostics intake. Handlers receive their dependencies through
// constructors and declare their own routes.
package handlers
