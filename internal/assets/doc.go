// Package assets loads the asset manifest: the build-produced mapping
// from logical bundle names ("vendor", "client", per-route chunks) to
// servable file paths. The manifest is read-only shared state for the
// process lifetime; dev mode may swap it in place via Reload/Watch.
package assets
