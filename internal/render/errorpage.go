package render

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// errorPageCSS is deliberately self-contained so the fallback page never
// depends on the asset manifest or collected component styles.
const errorPageCSS = `html{height:100%}body{height:100%;margin:0;display:flex;` +
	`align-items:center;justify-content:center;` +
	`font-family:system-ui,-apple-system,sans-serif;color:#333}` +
	`main{text-align:center}h1{font-size:3rem;margin:0 0 .5rem}` +
	`p{margin:0;color:#666}`

// ErrorPage builds a complete standalone document for a failed request.
// It cannot fail: everything it needs is embedded in the binary.
func ErrorPage(status int, message string) string {
	title := http.StatusText(status)
	if title == "" {
		title = "Error"
	}
	if message == "" {
		message = "Sorry, something went wrong."
	}

	var b strings.Builder
	b.WriteString(Doctype)
	b.WriteString(`<html lang="en"><head>`)
	b.WriteString(`<meta charset="utf-8"/>`)
	b.WriteString(`<title>` + templ.EscapeString(title) + `</title>`)
	b.WriteString(`<style>` + errorPageCSS + `</style>`)
	b.WriteString(`</head><body><main>`)
	b.WriteString(`<h1>` + strconv.Itoa(status) + `</h1>`)
	b.WriteString(`<p>` + templ.EscapeString(message) + `</p>`)
	b.WriteString(`</main></body></html>`)
	return b.String()
}
