package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	facebookOAuth "golang.org/x/oauth2/facebook"
)

const (
	// FacebookProviderName is the identifier for the Facebook OAuth provider.
	FacebookProviderName = "facebook"
	facebookProfileURL   = "https://graph.facebook.com/me?fields=id,name,email,picture"
)

// FacebookDefaultScopes returns the default scopes for Facebook OAuth.
func FacebookDefaultScopes() []string {
	return []string{"email", "public_profile"}
}

// FacebookProvider implements Provider for Facebook Login.
type FacebookProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewFacebookProvider creates a new Facebook OAuth provider.
// Returns an error if ClientID or ClientSecret is empty.
func NewFacebookProvider(cfg FacebookConfig, opts ...Option) (*FacebookProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = FacebookDefaultScopes()
	}

	return &FacebookProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     facebookOAuth.Endpoint,
		},
		httpClient: o.httpClient,
	}, nil
}

// Name returns the provider identifier.
func (p *FacebookProvider) Name() string {
	return FacebookProviderName
}

// AuthCodeURL generates the authorization URL.
func (p *FacebookProvider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (p *FacebookProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(p.contextWithHTTPClient(ctx), code)
}

// FetchProfile retrieves the user's profile from the Graph API.
func (p *FacebookProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := p.config.Client(p.contextWithHTTPClient(ctx), token)

	resp, err := client.Get(facebookProfileURL)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch profile: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("profile request failed: status=%d", resp.StatusCode))
	}

	var fbUser facebookUser
	if err := json.NewDecoder(resp.Body).Decode(&fbUser); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode profile: %w", err))
	}

	return &Profile{
		ID:      fbUser.ID,
		Email:   fbUser.Email,
		Name:    fbUser.Name,
		Picture: fbUser.Picture.Data.URL,
	}, nil
}

func (p *FacebookProvider) contextWithHTTPClient(ctx context.Context) context.Context {
	if p.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	return ctx
}

// facebookUser represents the response from the Graph API "me" endpoint.
type facebookUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}
