// Package cookie provides a cookie manager with consistent defaults.
//
// The Manager centralizes domain, path, Secure, HttpOnly, and SameSite
// attributes so handlers never build http.Cookie values by hand. Plain
// cookies carry the credential token (which is independently signed);
// signed cookies protect short-lived values like the OAuth state nonce.
package cookie
