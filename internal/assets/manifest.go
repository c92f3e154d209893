package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Reserved bundle names with a fixed position in every document:
// the vendor bundle loads first, the client entry bundle last.
const (
	VendorBundle = "vendor"
	ClientBundle = "client"
)

// Errors.
var (
	ErrUnknownBundle = errors.New("assets: unknown bundle")
)

// Bundle holds the servable file paths for one logical bundle name.
type Bundle struct {
	JS  string `json:"js"`
	CSS string `json:"css,omitempty"`
}

// Manifest maps logical bundle names to resolved file paths. It is loaded
// once at process start and shared by all requests; Reload swaps the
// mapping in place so dev mode can pick up rebuilt assets without a
// restart. All methods are safe for concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	path    string
	bundles map[string]Bundle
}

// Load reads a manifest file produced by the asset build.
func Load(path string) (*Manifest, error) {
	m := &Manifest{path: path}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload re-reads the manifest file and atomically replaces the mapping.
// On error the previous mapping stays in effect.
func (m *Manifest) Reload() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("assets: read manifest: %w", err)
	}

	var bundles map[string]Bundle
	if err := json.Unmarshal(data, &bundles); err != nil {
		return fmt.Errorf("assets: parse manifest: %w", err)
	}

	m.mu.Lock()
	m.bundles = bundles
	m.mu.Unlock()
	return nil
}

// Path returns the manifest file path.
func (m *Manifest) Path() string {
	return m.path
}

// Script resolves the script path for a logical bundle name.
// An unknown name is a configuration failure, not a request-level one.
func (m *Manifest) Script(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bundles[name]
	if !ok || b.JS == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownBundle, name)
	}
	return b.JS, nil
}

// Validate confirms every named bundle resolves, plus the two bundles
// every document references. Called at startup so a manifest that cannot
// serve the declared routes fails the process instead of a request.
func (m *Manifest) Validate(names ...string) error {
	required := append([]string{VendorBundle, ClientBundle}, names...)
	for _, name := range required {
		if _, err := m.Script(name); err != nil {
			return err
		}
	}
	return nil
}
