package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/renderd/renderd/internal/render"
)

const (
	layoutCSS = `.page{max-width:48rem;margin:0 auto;padding:2rem 1rem}` +
		`.page h1{font-size:2rem;margin:0 0 1rem}`
	homeCSS     = `.home p{line-height:1.6;color:#444}`
	loginCSS    = `.login a{display:inline-block;margin:.25rem 0;padding:.5rem 1rem;border:1px solid #ccc;border-radius:4px;text-decoration:none;color:#333}`
	notFoundCSS = `.notfound p{color:#666}`
)

// Home renders the front page. A signed-in caller is greeted by name.
func Home(name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		render.InsertCSS(ctx, layoutCSS, homeCSS)

		greeting := "Welcome!"
		if name != "" {
			greeting = "Welcome back, " + templ.EscapeString(name) + "!"
		}
		_, err := io.WriteString(w, `<div class="page home"><h1>`+greeting+`</h1>`+
			`<p>This page was rendered on the server and hydrated on the client.</p></div>`)
		return err
	})
}

// Login renders the sign-in page with a link per configured provider.
func Login(providers []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		render.InsertCSS(ctx, layoutCSS, loginCSS)

		if _, err := io.WriteString(w, `<div class="page login"><h1>Sign in</h1>`); err != nil {
			return err
		}
		for _, p := range providers {
			p = templ.EscapeString(p)
			if _, err := io.WriteString(w, `<a href="/login/`+p+`">Continue with `+p+`</a><br/>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// NotFound renders the 404 page for an unmatched path.
func NotFound(path string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		render.InsertCSS(ctx, layoutCSS, notFoundCSS)

		_, err := io.WriteString(w, `<div class="page notfound"><h1>Page not found</h1>`+
			`<p>Sorry, there is nothing at `+templ.EscapeString(path)+`.</p></div>`)
		return err
	})
}

// Placeholder renders an empty mount point. It is what the client
// receives when resolution fails and the page must still load so the
// client bundle can take over.
func Placeholder() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, ``)
		return err
	})
}
