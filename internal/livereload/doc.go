// Package livereload notifies connected browsers when the client
// bundle is rebuilt, so dev pages refresh themselves.
package livereload
