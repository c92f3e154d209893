package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/renderd/renderd/internal/assets"
)

// Doctype prefixes every document this service writes.
const Doctype = "<!doctype html>"

// defaultTitle is used when a descriptor carries none.
const defaultTitle = "renderd"

// bootstrapState is the client bootstrap payload embedded in every page.
type bootstrapState struct {
	APIURL   string `json:"apiUrl"`
	IsMobile bool   `json:"isMobile"`
}

// Assembler combines rendered markup, collected styles, and
// manifest-resolved script references into one complete HTML document.
type Assembler struct {
	manifest *assets.Manifest
	apiURL   string
}

// NewAssembler creates an Assembler bound to the process's manifest.
func NewAssembler(manifest *assets.Manifest, apiURL string) *Assembler {
	return &Assembler{manifest: manifest, apiURL: apiURL}
}

// Assemble produces the final document. Script order is fixed: vendor
// bundle, each descriptor chunk in order, client entry bundle. An
// unknown chunk name is a configuration failure and propagates.
func (a *Assembler) Assemble(markup []byte, desc *Descriptor, req *Request) (string, error) {
	scripts, err := a.scriptPaths(desc.Chunks)
	if err != nil {
		return "", err
	}

	state, err := json.Marshal(bootstrapState{APIURL: a.apiURL, IsMobile: req.IsMobile})
	if err != nil {
		return "", fmt.Errorf("render: marshal bootstrap state: %w", err)
	}

	title := desc.Title
	if title == "" {
		title = defaultTitle
	}

	var b strings.Builder
	b.WriteString(Doctype)
	b.WriteString(`<html lang="en"><head>`)
	b.WriteString(`<meta charset="utf-8"/>`)
	b.WriteString(`<meta http-equiv="x-ua-compatible" content="ie=edge"/>`)
	b.WriteString(`<title>` + templ.EscapeString(title) + `</title>`)
	if desc.Description != "" {
		b.WriteString(`<meta name="description" content="` + templ.EscapeString(desc.Description) + `"/>`)
	}
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	b.WriteString(`<style id="css">` + req.Styles.CSS() + `</style>`)
	b.WriteString(`</head><body>`)
	b.WriteString(`<div id="app">`)
	b.Write(markup)
	b.WriteString(`</div>`)
	b.WriteString(`<script>window.App=` + string(state) + `</script>`)
	for _, src := range scripts {
		b.WriteString(`<script src="` + templ.EscapeString(src) + `"></script>`)
	}
	b.WriteString(`</body></html>`)

	return b.String(), nil
}

// scriptPaths resolves the fixed-order script list through the manifest.
func (a *Assembler) scriptPaths(chunks []string) ([]string, error) {
	names := make([]string, 0, len(chunks)+2)
	names = append(names, assets.VendorBundle)
	names = append(names, chunks...)
	names = append(names, assets.ClientBundle)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		src, err := a.manifest.Script(name)
		if err != nil {
			return nil, err
		}
		paths = append(paths, src)
	}
	return paths, nil
}
