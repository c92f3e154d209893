package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Errors.
var (
	ErrSecretTooShort   = errors.New("jwt: secret must be 32+ bytes")
	ErrMalformedToken   = errors.New("jwt: malformed token")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrExpiredToken     = errors.New("jwt: token expired")
)

// Service signs and verifies HS256 tokens with a fixed secret.
// A Service is safe for concurrent use.
type Service struct {
	secret []byte
}

// NewFromString creates a Service from a string secret.
// The secret must be at least 32 bytes.
func NewFromString(secret string) (*Service, error) {
	if len(secret) < 32 {
		return nil, ErrSecretTooShort
	}
	return &Service{secret: []byte(secret)}, nil
}

// header is the fixed JOSE header for every token this service produces.
var encodedHeader = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

// Generate signs the claims and returns a compact token string.
// Output is deterministic for identical claims and secret.
func (s *Service) Generate(claims any) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signingInput := encodedHeader + "." + base64.RawURLEncoding.EncodeToString(payload)
	return signingInput + "." + s.sign(signingInput), nil
}

// Parse verifies the token signature and expiry, then unmarshals the
// payload into claims. Signature verification happens before any payload
// inspection. Returns ErrExpiredToken or ErrInvalidSignature distinctly.
func (s *Service) Parse(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrMalformedToken
	}

	signingInput := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(s.sign(signingInput)), []byte(parts[2])) {
		return ErrInvalidSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ErrMalformedToken
	}

	var exp struct {
		ExpiresAt int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &exp); err != nil {
		return ErrMalformedToken
	}
	if exp.ExpiresAt > 0 && exp.ExpiresAt < time.Now().Unix() {
		return ErrExpiredToken
	}

	return json.Unmarshal(payload, claims)
}

func (s *Service) sign(input string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// StandardClaims covers the registered claims the service cares about.
// Embed it in custom claim structs to get expiry handling.
type StandardClaims struct {
	Subject   string `json:"sub,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid reports whether the claims are still within their expiry horizon.
func (c StandardClaims) Valid() error {
	if c.ExpiresAt > 0 && c.ExpiresAt < time.Now().Unix() {
		return ErrExpiredToken
	}
	return nil
}
