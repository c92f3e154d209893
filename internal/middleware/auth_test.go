package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/renderd/renderd/internal/middleware"
	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/jwt"
	"github.com/renderd/renderd/pkg/oauth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type sessionClaims struct {
	oauth.Profile
	ExpiresAt int64 `json:"exp"`
}

func signedToken(t *testing.T, svc *jwt.Service, name string, ttl time.Duration) string {
	t.Helper()

	token, err := svc.Generate(sessionClaims{
		Profile:   oauth.Profile{ID: "u1", Name: name, Email: "u1@example.com"},
		ExpiresAt: time.Now().Add(ttl).Unix(),
	})
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString(testSecret)
	require.NoError(t, err)

	capture := func(got **oauth.Profile) web.HandlerFunc {
		return func(c web.Context) error {
			*got = middleware.Identity(c)
			return nil
		}
	}

	t.Run("no cookie means anonymous", func(t *testing.T) {
		t.Parallel()

		var got *oauth.Profile
		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
		require.NoError(t, middleware.Auth(svc)(capture(&got))(c))
		require.Nil(t, got)
	})

	t.Run("valid token attaches the profile", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: middleware.IdentityCookie, Value: signedToken(t, svc, "Ada", time.Hour)})

		var got *oauth.Profile
		c := newTestContext(httptest.NewRecorder(), r)
		require.NoError(t, middleware.Auth(svc)(capture(&got))(c))
		require.NotNil(t, got)
		require.Equal(t, "Ada", got.Name)
	})

	t.Run("invalid token clears the cookie and continues", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: middleware.IdentityCookie, Value: "not-a-token"})

		var got *oauth.Profile
		w := httptest.NewRecorder()
		c := newTestContext(w, r)
		require.NoError(t, middleware.Auth(svc)(capture(&got))(c))
		require.Nil(t, got)

		cleared := false
		for _, ck := range w.Result().Cookies() {
			if ck.Name == middleware.IdentityCookie && ck.MaxAge < 0 {
				cleared = true
			}
		}
		require.True(t, cleared, "expected the session cookie to be cleared")
	})

	t.Run("rejection log carries path and user agent", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/account", nil)
		r.Header.Set("User-Agent", "reporter-agent/1.0")
		r.AddCookie(&http.Cookie{Name: middleware.IdentityCookie, Value: "not-a-token"})

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))

		c := newTestContextLogged(httptest.NewRecorder(), r, log)
		require.NoError(t, middleware.Auth(svc)(func(c web.Context) error { return nil })(c))

		record := buf.String()
		require.Contains(t, record, "session token rejected")
		require.Contains(t, record, "/account")
		require.Contains(t, record, "reporter-agent/1.0")
	})

	t.Run("expired token is treated as invalid", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: middleware.IdentityCookie, Value: signedToken(t, svc, "Ada", -time.Hour)})

		var got *oauth.Profile
		c := newTestContext(httptest.NewRecorder(), r)
		require.NoError(t, middleware.Auth(svc)(capture(&got))(c))
		require.Nil(t, got)
	})
}
