// Package oauth abstracts external identity providers behind a small
// Provider interface: build the consent URL, exchange the callback code,
// fetch a provider-agnostic Profile. The login handlers never see
// provider-specific wire formats; the Profile they receive becomes the
// claim payload of the credential token.
package oauth
