// Package views holds the server-rendered page components. Each view is
// a templ.Component that emits its own stylesheet through the render
// style side channel, so a document only carries CSS for the views it
// actually rendered.
package views
