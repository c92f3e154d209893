// Package render turns resolved route descriptors into complete HTML
// documents.
//
// The pipeline is split into small pieces: Request captures the
// per-request facts a view may depend on (path, query, device class,
// authenticated identity), StyleSet collects component stylesheets in
// first-insertion order, Renderer executes a view into markup while
// exposing the style side channel, and Assembler wraps the markup into
// a full document with manifest-resolved script tags.
//
// ErrorPage is the self-contained fallback used when any of the above
// fails; it has no external inputs and cannot itself fail.
package render
