// Package jwt implements the credential codec: HS256 signing and
// verification of claim payloads with a shared secret.
//
// The Service is a pure function of its secret. Generate serializes and
// signs a claims struct into a compact token; Parse verifies the signature
// and expiry before handing the payload back. Expired tokens and tampered
// tokens fail with distinct sentinel errors so callers can decide whether
// the distinction matters (the auth middleware treats both the same).
//
//	svc, err := jwt.NewFromString(secret)
//	token, err := svc.Generate(jwt.StandardClaims{
//	    Subject:   userID,
//	    ExpiresAt: time.Now().Add(180 * 24 * time.Hour).Unix(),
//	})
//
//	var claims jwt.StandardClaims
//	if err := svc.Parse(token, &claims); err != nil { ... }
package jwt
