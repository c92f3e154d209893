package middleware

import (
	"context"

	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/jwt"
	"github.com/renderd/renderd/pkg/oauth"
)

// IdentityCookie is the session token cookie name.
const IdentityCookie = "id_token"

// identityKey is the request value key for the verified identity.
type identityKey struct{}

// Auth returns middleware that verifies the session token cookie and
// attaches the caller's profile to the request. It never rejects: a
// missing token means an anonymous request, and an invalid one is
// cleared and logged so the next request arrives clean. Pages decide
// for themselves what anonymous callers may see.
func Auth(svc *jwt.Service) web.Middleware {
	extract := web.NewExtractor(web.FromCookie(IdentityCookie))

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			token, ok := extract.Extract(c)
			if !ok || token == "" {
				return next(c)
			}

			var profile oauth.Profile
			if err := svc.Parse(token, &profile); err != nil {
				c.DeleteCookie(IdentityCookie)
				c.LogWarn("session token rejected",
					"path", c.Path(), "user_agent", c.UserAgent(), "error", err)
				return next(c)
			}

			c.Set(identityKey{}, &profile)
			return next(c)
		}
	}
}

// Identity returns the verified caller profile, or nil for anonymous
// requests.
func Identity(c web.Context) *oauth.Profile {
	return IdentityFromContext(c.Context())
}

// IdentityFromContext is Identity for code that only has the request
// context, like the GraphQL root object builder.
func IdentityFromContext(ctx context.Context) *oauth.Profile {
	p, _ := ctx.Value(identityKey{}).(*oauth.Profile)
	return p
}
