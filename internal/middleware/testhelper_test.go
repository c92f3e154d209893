package middleware_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/logger"
)

// testContext is a minimal web.Context for middleware tests.
type testContext struct {
	response http.ResponseWriter
	request  *http.Request
	logger   *slog.Logger
	written  bool
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
		logger:   logger.NewNope(),
	}
}

func newTestContextLogged(w http.ResponseWriter, r *http.Request, log *slog.Logger) *testContext {
	c := newTestContext(w, r)
	c.logger = log
	return c
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) SetRequest(r *http.Request)    { c.request = r }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Param(name string) string      { return "" }
func (c *testContext) Path() string                  { return c.request.URL.Path }
func (c *testContext) QueryParams() url.Values       { return c.request.URL.Query() }
func (c *testContext) Query(name string) string      { return c.request.URL.Query().Get(name) }
func (c *testContext) Header(name string) string     { return c.request.Header.Get(name) }
func (c *testContext) UserAgent() string             { return c.request.UserAgent() }

func (c *testContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *testContext) JSON(code int, v any) error {
	c.written = true
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.written = true
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) HTML(code int, doc string) error {
	c.written = true
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(doc))
	return err
}

func (c *testContext) NoContent(code int) error {
	c.written = true
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Redirect(code int, url string) error {
	c.written = true
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Render(code int, component web.Component) error {
	c.written = true
	c.response.WriteHeader(code)
	return component.Render(c.Context(), c.response)
}

func (c *testContext) Error(code int, message string, opts ...web.HTTPErrorOption) *web.HTTPError {
	return web.NewHTTPError(code, message)
}

func (c *testContext) Written() bool        { return c.written }
func (c *testContext) Logger() *slog.Logger { return c.logger }

func (c *testContext) LogDebug(msg string, attrs ...any) { c.logger.Debug(msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.logger.Info(msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.logger.Warn(msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any) { c.logger.Error(msg, attrs...) }

func (c *testContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *testContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *testContext) SetCookie(name, value string, maxAge int) {
	http.SetCookie(c.response, &http.Cookie{Name: name, Value: value, Path: "/", MaxAge: maxAge})
}

func (c *testContext) DeleteCookie(name string) {
	http.SetCookie(c.response, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})
}

func (c *testContext) CookieSigned(name string) (string, error) { return c.Cookie(name) }

func (c *testContext) SetCookieSigned(name, value string, maxAge int) error {
	c.SetCookie(name, value, maxAge)
	return nil
}

func (c *testContext) ResponseWriter() *web.ResponseWriter { return nil }

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }
