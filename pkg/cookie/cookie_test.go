package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renderd/renderd/pkg/cookie"
)

const testSecret = "cookie-test-secret-32-bytes-long!!"

func requestWithCookies(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManagerPlain(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()

		w := httptest.NewRecorder()
		m.Set(w, "id_token", "abc123", 3600)

		got, err := m.Get(requestWithCookies(t, w), "id_token")
		require.NoError(t, err)
		require.Equal(t, "abc123", got)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := m.Get(r, "id_token")
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("delete expires immediately", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()

		w := httptest.NewRecorder()
		m.Delete(w, "id_token")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "id_token", cookies[0].Name)
		require.Equal(t, -1, cookies[0].MaxAge)
		require.Empty(t, cookies[0].Value)
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithDomain("example.com"), cookie.WithSecure(true))

		w := httptest.NewRecorder()
		m.Set(w, "id_token", "v", 60)

		c := w.Result().Cookies()[0]
		require.Equal(t, "example.com", c.Domain)
		require.True(t, c.Secure)
		require.True(t, c.HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})
}

func TestManagerSigned(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret(testSecret))

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "oauth_state", "nonce-1", 300))

		got, err := m.GetSigned(requestWithCookies(t, w), "oauth_state")
		require.NoError(t, err)
		require.Equal(t, "nonce-1", got)
	})

	t.Run("tampered value rejected", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret(testSecret))

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "oauth_state", "nonce-1", 300))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		tampered := w.Result().Cookies()[0]
		tampered.Value = "eHh4" + tampered.Value[4:]
		r.AddCookie(tampered)

		_, err := m.GetSigned(r, "oauth_state")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("no secret configured", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()

		w := httptest.NewRecorder()
		require.ErrorIs(t, m.SetSigned(w, "oauth_state", "v", 60), cookie.ErrNoSecret)

		_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "oauth_state")
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}
