package render_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renderd/renderd/internal/assets"
	"github.com/renderd/renderd/internal/render"
)

// viewFunc adapts a function into a render.View.
type viewFunc func(ctx context.Context, w io.Writer) error

func (f viewFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

func writeManifest(t *testing.T, bundles string) *assets.Manifest {
	t.Helper()

	path := filepath.Join(t.TempDir(), "assets.json")
	require.NoError(t, os.WriteFile(path, []byte(bundles), 0o644))

	m, err := assets.Load(path)
	require.NoError(t, err)
	return m
}

func TestStyleSet(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates and preserves order", func(t *testing.T) {
		t.Parallel()

		s := render.NewStyleSet()
		s.Add(".a{}", ".b{}")
		s.Add(".a{}", ".c{}")
		s.Add("")

		require.Equal(t, 3, s.Len())
		require.Equal(t, ".a{}.b{}.c{}", s.CSS())
	})

	t.Run("insert via context is a no-op without a set", func(t *testing.T) {
		t.Parallel()

		require.NotPanics(t, func() {
			render.InsertCSS(context.Background(), ".a{}")
		})
	})
}

func TestDetectMobile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ua     string
		mobile bool
	}{
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", true},
		{"ipod", "Mozilla/5.0 (iPod touch; CPU iPhone OS 15_0)", true},
		{"android", "Mozilla/5.0 (Linux; Android 14; Pixel 8)", true},
		{"android mixed case", "mozilla/5.0 (linux; ANDROID 14)", true},
		{"desktop chrome", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) Chrome/120.0", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.mobile, render.DetectMobile(tt.ua))
		})
	}
}

func TestRenderer(t *testing.T) {
	t.Parallel()

	t.Run("collects styles through the context", func(t *testing.T) {
		t.Parallel()

		view := viewFunc(func(ctx context.Context, w io.Writer) error {
			render.InsertCSS(ctx, ".page{}")
			render.InsertCSS(ctx, ".page{}", ".widget{}")
			_, err := io.WriteString(w, "<h1>hello</h1>")
			return err
		})

		req := render.NewRequest(httptest.NewRequest("GET", "/", nil), nil, nil)
		markup, err := render.NewRenderer().Render(context.Background(), &render.Descriptor{View: view}, req)
		require.NoError(t, err)
		require.Equal(t, "<h1>hello</h1>", string(markup))
		require.Equal(t, ".page{}.widget{}", req.Styles.CSS())
	})

	t.Run("exposes the request to views", func(t *testing.T) {
		t.Parallel()

		view := viewFunc(func(ctx context.Context, w io.Writer) error {
			r := render.RequestFrom(ctx)
			require.NotNil(t, r)
			_, err := io.WriteString(w, r.Path)
			return err
		})

		req := render.NewRequest(httptest.NewRequest("GET", "/about", nil), nil, nil)
		markup, err := render.NewRenderer().Render(context.Background(), &render.Descriptor{View: view}, req)
		require.NoError(t, err)
		require.Equal(t, "/about", string(markup))
	})

	t.Run("errors without a view", func(t *testing.T) {
		t.Parallel()

		req := render.NewRequest(httptest.NewRequest("GET", "/", nil), nil, nil)
		_, err := render.NewRenderer().Render(context.Background(), &render.Descriptor{}, req)
		require.Error(t, err)
	})

	t.Run("wraps view failures with the path", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		view := viewFunc(func(ctx context.Context, w io.Writer) error { return boom })

		req := render.NewRequest(httptest.NewRequest("GET", "/broken", nil), nil, nil)
		_, err := render.NewRenderer().Render(context.Background(), &render.Descriptor{View: view}, req)
		require.ErrorIs(t, err, boom)
		require.Contains(t, err.Error(), "/broken")
	})
}

func TestAssembler(t *testing.T) {
	t.Parallel()

	manifest := writeManifest(t, `{
		"vendor": {"js": "/assets/vendor.js"},
		"client": {"js": "/assets/client.js"},
		"home":   {"js": "/assets/home.chunk.js"}
	}`)
	asm := render.NewAssembler(manifest, "/graphql")

	t.Run("document shape", func(t *testing.T) {
		t.Parallel()

		req := render.NewRequest(httptest.NewRequest("GET", "/", nil), nil, nil)
		req.Styles.Add(".a{}")

		doc, err := asm.Assemble([]byte("<h1>hi</h1>"), &render.Descriptor{
			Title:       "Home",
			Description: "Front page",
			Chunks:      []string{"home"},
		}, req)
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(doc, "<!doctype html>"))
		require.Contains(t, doc, `<title>Home</title>`)
		require.Contains(t, doc, `<meta name="description" content="Front page"/>`)
		require.Contains(t, doc, `<style id="css">.a{}</style>`)
		require.Contains(t, doc, `<div id="app"><h1>hi</h1></div>`)
		require.Contains(t, doc, `window.App={"apiUrl":"/graphql","isMobile":false}`)
	})

	t.Run("fixed script order", func(t *testing.T) {
		t.Parallel()

		req := render.NewRequest(httptest.NewRequest("GET", "/", nil), nil, nil)
		doc, err := asm.Assemble(nil, &render.Descriptor{Chunks: []string{"home"}}, req)
		require.NoError(t, err)

		vendor := strings.Index(doc, `src="/assets/vendor.js"`)
		chunk := strings.Index(doc, `src="/assets/home.chunk.js"`)
		client := strings.Index(doc, `src="/assets/client.js"`)
		require.True(t, vendor >= 0 && chunk >= 0 && client >= 0)
		require.Less(t, vendor, chunk)
		require.Less(t, chunk, client)
	})

	t.Run("escapes title and description", func(t *testing.T) {
		t.Parallel()

		req := render.NewRequest(httptest.NewRequest("GET", "/", nil), nil, nil)
		doc, err := asm.Assemble(nil, &render.Descriptor{
			Title:       `<script>alert(1)</script>`,
			Description: `"quoted"`,
		}, req)
		require.NoError(t, err)
		require.NotContains(t, doc, `<title><script>`)
		require.Contains(t, doc, "&lt;script&gt;")
		require.Contains(t, doc, "&#34;quoted&#34;")
	})

	t.Run("mobile classification reaches the bootstrap state", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)")
		req := render.NewRequest(r, nil, nil)

		doc, err := asm.Assemble(nil, &render.Descriptor{}, req)
		require.NoError(t, err)
		require.Contains(t, doc, `"isMobile":true`)
	})

	t.Run("unknown chunk fails", func(t *testing.T) {
		t.Parallel()

		req := render.NewRequest(httptest.NewRequest("GET", "/", nil), nil, nil)
		_, err := asm.Assemble(nil, &render.Descriptor{Chunks: []string{"missing"}}, req)
		require.ErrorIs(t, err, assets.ErrUnknownBundle)
	})
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	t.Run("complete standalone document", func(t *testing.T) {
		t.Parallel()

		doc := render.ErrorPage(500, "database unreachable")
		require.True(t, strings.HasPrefix(doc, "<!doctype html>"))
		require.Contains(t, doc, "<h1>500</h1>")
		require.Contains(t, doc, "database unreachable")
		require.Contains(t, doc, "<style>")
		require.NotContains(t, doc, `id="css"`)
	})

	t.Run("escapes the message", func(t *testing.T) {
		t.Parallel()

		doc := render.ErrorPage(400, "<img src=x>")
		require.NotContains(t, doc, "<img")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		doc := render.ErrorPage(999, "")
		require.Contains(t, doc, "<h1>999</h1>")
		require.Contains(t, doc, "Sorry, something went wrong.")
	})
}
