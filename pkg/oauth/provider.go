package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// Profile represents provider-agnostic user information retrieved from an
// identity provider after a successful handshake. It is the claim payload
// embedded into the credential token at login.
type Profile struct {
	ID      string `json:"id"` // provider's unique user identifier
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Provider abstracts provider-specific OAuth operations. Each provider
// (Facebook, Google, ...) handles its own endpoint and userinfo details.
type Provider interface {
	// Name returns the provider identifier (e.g., "facebook", "google").
	Name() string

	// AuthCodeURL generates the authorization URL for the handshake.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// FetchProfile retrieves the user's profile using the access token.
	FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}
