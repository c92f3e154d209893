package handlers_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/renderd/renderd/internal/assets"
	"github.com/renderd/renderd/internal/graph"
	"github.com/renderd/renderd/internal/handlers"
	"github.com/renderd/renderd/internal/middleware"
	"github.com/renderd/renderd/internal/render"
	"github.com/renderd/renderd/internal/routes"
	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/cookie"
	"github.com/renderd/renderd/pkg/jwt"
	"github.com/renderd/renderd/pkg/logger"
	"github.com/renderd/renderd/pkg/oauth"
)

const (
	testJWTSecret    = "0123456789abcdef0123456789abcdef"
	testCookieSecret = "fedcba9876543210fedcba9876543210"
)

const testManifest = `{
	"vendor": {"js": "/assets/vendor.js"},
	"client": {"js": "/assets/client.js"},
	"home":   {"js": "/assets/home.chunk.js"},
	"login":  {"js": "/assets/login.chunk.js"}
}`

// fakeProvider is a canned oauth.Provider for handshake tests.
type fakeProvider struct {
	name        string
	exchangeErr error
	profileErr  error
	profile     oauth.Profile
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return "https://provider.example/auth?state=" + state
}

func (p *fakeProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return &oauth2.Token{AccessToken: "access-" + code}, nil
}

func (p *fakeProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*oauth.Profile, error) {
	if p.profileErr != nil {
		return nil, p.profileErr
	}
	profile := p.profile
	return &profile, nil
}

// testEnv bundles everything a handler test touches.
type testEnv struct {
	app      *web.App
	tokens   *jwt.Service
	cookies  *cookie.Manager
	provider *fakeProvider
}

// failingResolver makes every resolution fail.
type failingResolver struct{ err error }

func (r *failingResolver) Resolve(ctx context.Context, req *render.Request) (*render.Descriptor, error) {
	return nil, r.err
}

type envOption func(*envConfig)

type envConfig struct {
	resolver routes.Resolver
	provider *fakeProvider
	log      *slog.Logger
}

func withResolver(r routes.Resolver) envOption {
	return func(cfg *envConfig) { cfg.resolver = r }
}

func withProvider(p *fakeProvider) envOption {
	return func(cfg *envConfig) { cfg.provider = p }
}

func withAppLogger(log *slog.Logger) envOption {
	return func(cfg *envConfig) { cfg.log = log }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := &envConfig{
		provider: &fakeProvider{name: "google", profile: oauth.Profile{ID: "u1", Name: "Ada", Email: "ada@example.com"}},
		log:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	manifestPath := filepath.Join(t.TempDir(), "assets.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifest), 0o644))
	manifest, err := assets.Load(manifestPath)
	require.NoError(t, err)

	tokens, err := jwt.NewFromString(testJWTSecret)
	require.NoError(t, err)

	cookies := cookie.New(cookie.WithSecret(testCookieSecret))

	authHandler := handlers.NewAuthHandler(tokens, cfg.provider)
	if cfg.resolver == nil {
		cfg.resolver = routes.Default(authHandler.ProviderNames())
	}

	schema, err := graph.NewSchema()
	require.NoError(t, err)

	app := web.New(
		web.WithLogger(cfg.log),
		web.WithCookieManager(cookies),
		web.WithMiddleware(
			middleware.RequestID(),
			middleware.Recover(),
			middleware.Auth(tokens),
		),
		web.WithHandlers(
			authHandler,
			handlers.NewGraphQLHandler(schema, false),
			handlers.NewDiagnosticsHandler(logger.NewNope()),
			handlers.NewPagesHandler(cfg.resolver, render.NewRenderer(), render.NewAssembler(manifest, "/graphql")),
		),
		web.WithErrorHandler(handlers.HandleError),
		web.WithNotFoundHandler(handlers.HandleNotFound),
	)

	return &testEnv{app: app, tokens: tokens, cookies: cookies, provider: cfg.provider}
}

// do serves one request through the full stack.
func (e *testEnv) do(r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.app.Router().ServeHTTP(w, r)
	return w
}

// sessionCookie builds a valid session cookie for the given profile.
func (e *testEnv) sessionCookie(t *testing.T, profile oauth.Profile) *http.Cookie {
	t.Helper()

	token, err := e.tokens.Generate(struct {
		oauth.Profile
		ExpiresAt int64 `json:"exp"`
	}{Profile: profile, ExpiresAt: time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	return &http.Cookie{Name: middleware.IdentityCookie, Value: token}
}
