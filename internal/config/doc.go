// Package config loads process configuration from an optional
// renderd.yml file and RENDERD_-prefixed environment variables.
package config
