package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/renderd/renderd/internal/middleware"
	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/jwt"
	"github.com/renderd/renderd/pkg/oauth"
)

const (
	// sessionTTL is how long a login stays valid.
	sessionTTL = 180 * 24 * time.Hour

	// stateCookie holds the CSRF state between redirect and callback.
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

// sessionClaims is the credential token payload: the profile plus
// expiry.
type sessionClaims struct {
	oauth.Profile
	ExpiresAt int64 `json:"exp"`
	IssuedAt  int64 `json:"iat"`
}

// AuthHandler runs the login handshake against external identity
// providers and issues the session cookie.
type AuthHandler struct {
	providers map[string]oauth.Provider
	tokens    *jwt.Service
}

// NewAuthHandler creates the auth handler for the given providers.
func NewAuthHandler(tokens *jwt.Service, providers ...oauth.Provider) *AuthHandler {
	m := make(map[string]oauth.Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &AuthHandler{providers: m, tokens: tokens}
}

// ProviderNames lists the configured providers, for the login page.
func (h *AuthHandler) ProviderNames() []string {
	names := make([]string, 0, len(h.providers))
	for name := range h.providers {
		names = append(names, name)
	}
	return names
}

// Routes declares the login endpoints.
func (h *AuthHandler) Routes(r web.Router) {
	r.Route("/login", func(r web.Router) {
		r.GET("/{provider}", h.begin)
		r.GET("/{provider}/return", h.callback)
	})
}

// begin redirects the caller to the provider's consent screen.
func (h *AuthHandler) begin(c web.Context) error {
	p, ok := h.providers[c.Param("provider")]
	if !ok {
		return web.ErrNotFound("unknown login provider", web.WithError(oauth.ErrUnknownProvider))
	}

	state := uuid.NewString()
	if err := c.SetCookieSigned(stateCookie, state, int(stateTTL.Seconds())); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

// callback finishes the handshake: verify state, trade the code for a
// token, fetch the profile, and set the session cookie. Any failure
// lands the caller back on the login page rather than an error screen.
func (h *AuthHandler) callback(c web.Context) error {
	p, ok := h.providers[c.Param("provider")]
	if !ok {
		return web.ErrNotFound("unknown login provider", web.WithError(oauth.ErrUnknownProvider))
	}

	fail := func(msg string, err error) error {
		c.LogWarn("login failed", "provider", p.Name(), "reason", msg, "error", err)
		return c.Redirect(http.StatusFound, "/login")
	}

	if denied := c.Query("error"); denied != "" {
		return fail("provider returned "+denied, nil)
	}

	state, err := c.CookieSigned(stateCookie)
	c.DeleteCookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		return fail("state mismatch", err)
	}

	code := c.Query("code")
	if code == "" {
		return fail("missing authorization code", nil)
	}

	token, err := p.Exchange(c.Context(), code)
	if err != nil {
		return fail("code exchange failed", err)
	}

	profile, err := p.FetchProfile(c.Context(), token)
	if err != nil {
		return fail("profile fetch failed", err)
	}

	now := time.Now()
	session, err := h.tokens.Generate(sessionClaims{
		Profile:   *profile,
		ExpiresAt: now.Add(sessionTTL).Unix(),
		IssuedAt:  now.Unix(),
	})
	if err != nil {
		return fail("token generation failed", err)
	}

	c.SetCookie(middleware.IdentityCookie, session, int(sessionTTL.Seconds()))
	c.LogInfo("login succeeded", "provider", p.Name(), "user_id", profile.ID)
	return c.Redirect(http.StatusFound, "/")
}
